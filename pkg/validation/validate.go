// Package validation holds the request DTOs and a shared validator
// instance for the mutation endpoints.
package validation

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AppendMessage is the body for appending a creator or fan message.
type AppendMessage struct {
	Body string `json:"body" validate:"required,max=5000"`
	From string `json:"from" validate:"required,oneof=creator fan"`
}

// ReplaceTags is the body for wholesale tag replacement. The pointer
// distinguishes an absent field from an explicit empty list; absent is
// rejected, empty clears the tags.
type ReplaceTags struct {
	Tags *[]string `json:"tags" validate:"required,dive,required,max=64"`
}

// Struct validates a DTO and folds validator field errors into one
// readable message.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, strings.ToLower(fe.Field())+" failed "+fe.Tag())
	}
	return &FieldError{Message: strings.Join(parts, "; ")}
}

// FieldError is a validation failure suitable for a 400 response body.
type FieldError struct {
	Message string
}

func (e *FieldError) Error() string { return e.Message }
