// Package apperr defines the error type that crosses the boundary between the
// service layer and the HTTP layer.
//
// An *Error carries the HTTP status and the client-facing message together, so
// handlers never have to guess how a domain failure should be presented. Any
// error that is not an *Error is treated as unexpected by the HTTP error
// classifier and is either recognised by its storage code or reported as a 500.
package apperr

import (
	"errors"
	"net/http"
)

// Client-facing messages shared by more than one layer.
const (
	MsgInvalidNumber   = "Invalid input: expected a number"
	MsgIncompletePost  = "Incomplete POST request: one or more required fields missing data"
	MsgIncompletePatch = "Incomplete PATCH request: missing 'inc_votes' property!"
)

// Error is a failure with an explicit HTTP status and a message that is safe to
// show to clients verbatim.
type Error struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New builds an *Error with the given status and message.
func New(status int, msg string) *Error {
	return &Error{Status: status, Message: msg}
}

// NotFound builds a 404 *Error.
func NotFound(msg string) *Error { return New(http.StatusNotFound, msg) }

// BadRequest builds a 400 *Error.
func BadRequest(msg string) *Error { return New(http.StatusBadRequest, msg) }

// As unwraps err looking for an *Error.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
