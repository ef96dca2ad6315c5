// Package apperror defines the closed set of failures the task service reports to callers.
package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind classifies a failure reported to the caller.
type Kind int

const (
	// Internal is anything that is not a caller mistake.
	Internal Kind = iota
	// InvalidId is a malformed id token.
	InvalidId
	// InvalidQuery is a malformed filter, sort or priority level token.
	InvalidQuery
	// ValidationError is a missing or malformed field in a request body.
	ValidationError
	// NotFound is a well-formed id with no matching task, or an unknown route.
	NotFound
	// MethodNotAllowed is a known route requested with an unsupported method.
	MethodNotAllowed
)

func (k Kind) String() string {
	switch k {
	case InvalidId:
		return "invalid id"
	case InvalidQuery:
		return "invalid query"
	case ValidationError:
		return "validation error"
	case NotFound:
		return "not found"
	case MethodNotAllowed:
		return "method not allowed"
	default:
		return "internal"
	}
}

// Status returns the HTTP status code for k.
func (k Kind) Status() int {
	switch k {
	case InvalidId, InvalidQuery, ValidationError:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case MethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// Error is a failure with a kind and a message safe to show to the caller.
type Error struct {
	Kind    Kind
	Message string
	// Field names the offending request field for ValidationError.
	Field string
}

func (e *Error) Error() string {
	return e.Message
}

// New returns an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Validation returns a ValidationError about field.
func Validation(field, message string) *Error {
	return &Error{Kind: ValidationError, Message: message, Field: field}
}

var (
	ErrInvalidId = New(InvalidId, "Invalid task id")
	ErrNotFound  = New(NotFound, "Task not found")

	ErrRouteNotFound    = New(NotFound, "Route not found")
	ErrMethodNotAllowed = New(MethodNotAllowed, "Method not allowed")
)

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err carries an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
