// Package domainerrors provides coded errors that translate cleanly to HTTP
// status codes at the transport boundary. Services return these; handlers map
// them without inspecting message text.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code classifies a domain error.
type Code string

const (
	CodeBadRequest Code = "bad_request"
	CodeNotFound   Code = "not_found"
	CodeInternal   Code = "internal"
)

// Error carries a machine-readable code alongside the client-facing message.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	var de *Error
	return errors.As(err, &de) && de.Code == code
}

// ToHTTPStatus maps a code onto the HTTP status used at the transport layer.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
