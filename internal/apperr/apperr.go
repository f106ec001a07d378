// Package apperr defines the typed errors that cross the request boundary.
package apperr

import "net/http"

// Error is a request-facing failure with an HTTP status. Store-level faults
// never become an Error; repositories swallow them.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NotFound reports a missing entity, e.g. NotFound("Item").
func NotFound(resource string) *Error {
	return &Error{Status: http.StatusNotFound, Message: resource + " not found"}
}

// Authentication reports a missing, invalid, or expired credential.
func Authentication(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message}
}

// Validation reports malformed input.
func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// BadRequest reports a create or update failure not otherwise classified.
func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}
