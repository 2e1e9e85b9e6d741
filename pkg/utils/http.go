package utils

import (
	"encoding/json"
	"net/http"

	"fandash/pkg/logger"
)

// Envelope is the uniform response wrapper. Success responses carry data
// and optional meta; failures carry a machine code and a message.
type Envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
	Error   *ErrorBody `json:"error,omitempty"`
}

// Meta annotates list and detail responses.
type Meta struct {
	Count  int  `json:"count"`
	Cached bool `json:"cached"`
}

// ErrorBody is the failure payload.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Stable error codes returned by the API.
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL_ERROR"
)

// JSONSuccess writes a success envelope with the given status.
func JSONSuccess(w http.ResponseWriter, status int, data any, meta *Meta) {
	writeJSON(w, status, Envelope{Success: true, Data: data, Meta: meta})
}

// JSONError writes a failure envelope with the given status and code.
func JSONError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, Envelope{Success: false, Error: &ErrorBody{Code: code, Message: msg}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response_encode_failed", "error", err)
	}
}
