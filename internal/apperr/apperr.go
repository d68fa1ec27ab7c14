// Package apperr defines the error taxonomy shared by the recipe aggregation core.
//
// Every fallible operation returns a plain Go error; callers match on the kind
// with errors.Is against the sentinels below or with KindOf.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure.
type Kind string

const (
	KindUpstreamRateLimited Kind = "upstream_rate_limited"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindUpstreamNotFound    Kind = "upstream_not_found"
	KindNotFound            Kind = "not_found"
	KindValidationFailed    Kind = "validation_failed"
	KindAccessDenied        Kind = "access_denied"
	KindConflict            Kind = "conflict"
	KindInternal            Kind = "internal"
)

// Error is a classified error. Status carries the provider HTTP status for
// upstream failures and is zero otherwise.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, apperr.ErrNotFound) matches any not-found error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is.
var (
	ErrUpstreamRateLimited = &Error{Kind: KindUpstreamRateLimited}
	ErrUpstreamUnavailable = &Error{Kind: KindUpstreamUnavailable}
	ErrUpstreamNotFound    = &Error{Kind: KindUpstreamNotFound}
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrValidationFailed    = &Error{Kind: KindValidationFailed}
	ErrAccessDenied        = &Error{Kind: KindAccessDenied}
	ErrConflict            = &Error{Kind: KindConflict}
)

// New returns a classified error with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies err under kind.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Upstream builds the error returned for a non-2xx provider response.
func Upstream(status int, message string) *Error {
	switch status {
	case http.StatusTooManyRequests:
		return &Error{Kind: KindUpstreamRateLimited, Message: message, Status: status}
	case http.StatusNotFound:
		return &Error{Kind: KindUpstreamNotFound, Message: message, Status: status}
	default:
		return &Error{Kind: KindUpstreamUnavailable, Message: message, Status: status}
	}
}

// NotFound is shorthand for a missing local entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Validation is shorthand for malformed input.
func Validation(format string, args ...interface{}) *Error {
	return New(KindValidationFailed, format, args...)
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto the status code the API responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindUpstreamRateLimited:
		return http.StatusTooManyRequests
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	case KindUpstreamNotFound, KindNotFound:
		return http.StatusNotFound
	case KindValidationFailed:
		return http.StatusBadRequest
	case KindAccessDenied:
		return http.StatusForbidden
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
