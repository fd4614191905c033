// Package apperr defines the error kinds the API exposes to clients.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error by how it is reported to the client.
type Kind int

const (
	Internal Kind = iota
	Validation
	Unauthorized
	NotFound
	Conflict
	TooLarge
)

// Status maps a kind to its HTTP status code.
func (k Kind) Status() int {
	switch k {
	case Validation:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case TooLarge:
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusInternalServerError
}

// Error is an error with a client-safe message. Err, if set, is for server logs only.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NewValidation(message string, fields map[string]string) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

func NewUnauthorized(message string) *Error {
	return &Error{Kind: Unauthorized, Message: message}
}

func NewNotFound(message string) *Error {
	return &Error{Kind: NotFound, Message: message}
}

func NewConflict(message string) *Error {
	return &Error{Kind: Conflict, Message: message}
}

// Wrap marks err as internal. The message sent to clients is always generic.
func Wrap(err error, message string) *Error {
	return &Error{Kind: Internal, Message: message, Err: err}
}

// As extracts an *Error from err. Errors without one are treated as Internal.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the kind of err, Internal when it carries none.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return Internal
}
