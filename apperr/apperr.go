// Package apperr defines the error taxonomy shared by the store, the
// pipeline and the HTTP handlers. Every failure surfaced to a caller is
// classified into one of the kinds below so handlers can map it to a
// status code without inspecting error strings.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for API responses.
type Kind int

const (
	// Internal is the default for unexpected failures.
	Internal Kind = iota
	// NotFound means a referenced identifier could not be resolved.
	NotFound
	// InvalidInput means a parameter is out of range or malformed.
	InvalidInput
	// InvalidMedia means a source file is missing, empty or corrupt, or an
	// intermediate clip failed a validity check.
	InvalidMedia
	// EncodeFailure means the external encoder invocation failed.
	EncodeFailure
)

// Error carries a kind, a human-readable message and an optional cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates a classified error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error, keeping it as the cause.
func Wrap(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf returns the kind of err, or Internal if it is unclassified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Code returns the stable string code for an error kind.
func Code(err error) string {
	switch KindOf(err) {
	case NotFound:
		return "not_found"
	case InvalidInput:
		return "invalid_input"
	case InvalidMedia:
		return "invalid_media"
	case EncodeFailure:
		return "encode_failure"
	default:
		return "internal"
	}
}

// HTTPStatus maps an error to the status class returned to callers.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case NotFound:
		return http.StatusNotFound
	case InvalidInput:
		return http.StatusBadRequest
	case InvalidMedia:
		return http.StatusUnprocessableEntity
	case EncodeFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
