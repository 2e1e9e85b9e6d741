// Package utils holds the response envelope helpers and id generation
// shared by the HTTP handlers.
package utils

import "github.com/google/uuid"

// GenMessageID returns a new message id in the msg_<uuid> form.
func GenMessageID() string {
	return "msg_" + uuid.NewString()
}
