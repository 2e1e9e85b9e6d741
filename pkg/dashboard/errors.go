package dashboard

import "errors"

// ErrNotFound is returned when the requested conversation does not exist.
var ErrNotFound = errors.New("conversation not found")

// ErrValidation wraps input problems the caller can fix.
var ErrValidation = errors.New("invalid input")
