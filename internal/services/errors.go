package services

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation    ErrorKind = "validation"
	KindNotFound      ErrorKind = "not_found"
	KindStateConflict ErrorKind = "state_conflict"
	KindService       ErrorKind = "service"
	// KindConflict and KindUnauthorized are raised by account and record
	// management, never by session transitions.
	KindConflict     ErrorKind = "conflict"
	KindUnauthorized ErrorKind = "unauthorized"
)

// ErrParseDegraded marks a model response that could not be parsed and was
// replaced by a placeholder. It is only ever logged.
var ErrParseDegraded = errors.New("model response could not be parsed")

// Error is the error type surfaced by the interview operations. Kind decides
// how the HTTP layer answers; Message is safe to show to the caller.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	// StatusCode is the upstream HTTP status for service errors raised by a
	// remote provider, zero otherwise.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func ValidationError(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

func NotFoundError(op, message string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message, Err: err}
}

func StateConflictError(op, message string) *Error {
	return &Error{Kind: KindStateConflict, Op: op, Message: message}
}

func ServiceError(op, message string, err error) *Error {
	return &Error{Kind: KindService, Op: op, Message: message, Err: err}
}

func ConflictError(op, message string, err error) *Error {
	return &Error{Kind: KindConflict, Op: op, Message: message, Err: err}
}

func UnauthorizedError(op, message string) *Error {
	return &Error{Kind: KindUnauthorized, Op: op, Message: message}
}

// KindOf returns the kind of the first *Error in err's chain, or an empty
// kind when there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// upstreamMessage keeps the detail of the wrapped upstream failure in the
// message shown to callers.
func upstreamMessage(prefix string, err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return fmt.Sprintf("%s: %s", prefix, e.Message)
	}
	if err != nil {
		return fmt.Sprintf("%s: %v", prefix, err)
	}
	return prefix
}
