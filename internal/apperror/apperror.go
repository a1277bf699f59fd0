// Package apperror carries the failure kinds services report to controllers.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies a failure; controllers turn it into an HTTP status.
type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindForbidden    Kind = "forbidden"
	KindNotReady     Kind = "not_ready"
	KindConflict     Kind = "conflict"
	KindBadRequest   Kind = "bad_request"
	KindUnauthorized Kind = "unauthorized"
	KindUnavailable  Kind = "unavailable"
	KindInternal     Kind = "internal"
)

// ExistingSubmission is attached to conflict errors so clients can show the earlier result.
type ExistingSubmission struct {
	Score       float64
	SubmittedAt time.Time
}

// Error is a classified failure with a client-facing message and an optional cause.
type Error struct {
	Kind     Kind
	Message  string
	Err      error
	Existing *ExistingSubmission
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error of the given kind.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error of the given kind around a cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// NotFound, Forbidden, NotReady and BadRequest build Errors of their kind.
func NotFound(format string, args ...any) *Error   { return New(KindNotFound, format, args...) }
func Forbidden(format string, args ...any) *Error  { return New(KindForbidden, format, args...) }
func NotReady(format string, args ...any) *Error   { return New(KindNotReady, format, args...) }
func BadRequest(format string, args ...any) *Error { return New(KindBadRequest, format, args...) }

// Conflict reports an earlier submission; existing may be nil when it could not be read.
func Conflict(existing *ExistingSubmission, format string, args ...any) *Error {
	e := New(KindConflict, format, args...)
	e.Existing = existing
	return e
}

// Internal wraps an unexpected failure. Its message is not shown to clients.
func Internal(err error, format string, args ...any) *Error {
	return Wrap(KindInternal, err, format, args...)
}

// KindOf returns the kind of the first *Error in the chain, or KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps a kind to its response status. NotReady is a 400.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindNotReady, KindBadRequest:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
