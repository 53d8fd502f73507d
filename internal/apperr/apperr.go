// Package apperr holds the failure kinds shared by every openmusic service
// and their mapping onto HTTP status codes.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrAuthorization  = errors.New("forbidden")
	ErrInvariant      = errors.New("invariant violation")
	ErrAuthentication = errors.New("unauthenticated")
	ErrValidation     = errors.New("invalid payload")
)

// Error is a domain failure with a message that is safe to show to callers.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NotFound(msg string) error       { return &Error{Kind: ErrNotFound, Msg: msg} }
func Authorization(msg string) error  { return &Error{Kind: ErrAuthorization, Msg: msg} }
func Invariant(msg string) error      { return &Error{Kind: ErrInvariant, Msg: msg} }
func Authentication(msg string) error { return &Error{Kind: ErrAuthentication, Msg: msg} }
func Validation(msg string) error     { return &Error{Kind: ErrValidation, Msg: msg} }

// Status returns the HTTP status for err. Errors that carry no kind are
// internal failures.
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvariant):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the caller-facing text of err, or "" for internal errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}
