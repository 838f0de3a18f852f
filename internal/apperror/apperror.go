// Package apperror defines the request-terminal error kinds the server
// reports and the HTTP status each one maps to.
package apperror

import (
	stderrors "errors"
	"net/http"

	"github.com/pkg/errors"
)

type Kind int

const (
	Internal Kind = iota
	RouteNotFound
	Unauthorized
	BodyParseError
	BodyTooLarge
	StaticFileNotFound
	NotFound
)

func (k Kind) String() string {
	switch k {
	case RouteNotFound:
		return "RouteNotFound"
	case Unauthorized:
		return "Unauthorized"
	case BodyParseError:
		return "BodyParseError"
	case BodyTooLarge:
		return "BodyTooLarge"
	case StaticFileNotFound:
		return "StaticFileNotFound"
	case NotFound:
		return "NotFound"
	default:
		return "Internal"
	}
}

// Status is the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case RouteNotFound, StaticFileNotFound, NotFound:
		return http.StatusNotFound
	case Unauthorized:
		return http.StatusUnauthorized
	case BodyParseError:
		return http.StatusBadRequest
	case BodyTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Error is an error with a kind and a message safe to show the client.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches kind and message to err, recording a stack trace on it.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: errors.WithStack(err)}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Message returns the client-facing message for err. Errors without a
// kind never leak their text.
func Message(err error) string {
	var e *Error
	if stderrors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return "Internal server error"
}
