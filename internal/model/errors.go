package model

import (
	"errors"
	"fmt"
)

// ErrorCode is the stable machine-readable code attached to every error
// that crosses the messaging core boundary.
type ErrorCode string

const (
	CodeValidation       ErrorCode = "validation_error"
	CodeCapacityExceeded ErrorCode = "capacity_exceeded"
	CodeRateLimited      ErrorCode = "rate_limit_exceeded"
	CodeTransient        ErrorCode = "transient_error"
	CodeCircuitOpen      ErrorCode = "circuit_open"
	CodeNotFound         ErrorCode = "not_found"
)

type Error struct {
	Code    ErrorCode
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is matches errors by code so callers can compare against sentinel values.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

func NewValidationError(format string, args ...interface{}) error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NewCapacityError(format string, args ...interface{}) error {
	return &Error{Code: CodeCapacityExceeded, Message: fmt.Sprintf(format, args...)}
}

func NewRateLimitError(key string) error {
	return &Error{Code: CodeRateLimited, Message: fmt.Sprintf("rate limit exceeded for %q", key)}
}

func NewTransientError(cause error) error {
	return &Error{Code: CodeTransient, Message: "store unavailable", cause: cause}
}

func NewCircuitOpenError(op string) error {
	return &Error{Code: CodeCircuitOpen, Message: fmt.Sprintf("circuit open, %s rejected", op)}
}

func NewNotFoundError(entity, id string) error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// CodeOf extracts the stable code, defaulting to transient for untyped
// errors since those only originate from the store driver.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeTransient
}

// IsTransient reports whether err may be retried. Untyped errors are
// treated as transient: only the store driver produces them.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code == CodeTransient
	}
	return true
}
