package shared

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-level error
type DomainError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	cause     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any
func (e *DomainError) Unwrap() error {
	return e.cause
}

// Is matches domain errors by code, so copies made by WithMessage and Wrap
// still satisfy errors.Is against the package sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithMessage returns a copy of the error carrying a more specific message
func (e *DomainError) WithMessage(format string, args ...any) *DomainError {
	return &DomainError{
		Code:      e.Code,
		Message:   fmt.Sprintf(format, args...),
		Retryable: e.Retryable,
		cause:     e.cause,
	}
}

// Wrap returns a copy of the error with cause attached.
// The cause is kept for logging and errors.Is/As, it is never shown to API clients.
func (e *DomainError) Wrap(cause error) *DomainError {
	return &DomainError{
		Code:      e.Code,
		Message:   e.Message,
		Retryable: e.Retryable,
		cause:     cause,
	}
}

// Error codes
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeAlreadyExist = "ALREADY_EXISTS"
	CodeUpstreamData = "UPSTREAM_DATA_ERROR"
	CodeInternal     = "INTERNAL_ERROR"
	CodeTimeout      = "TIMEOUT"
)

// Common domain errors
var (
	ErrValidation    = NewDomainError(CodeValidation, "Invalid input provided")
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExist, "Resource already exists")
	ErrInternal      = NewDomainError(CodeInternal, "An unexpected error occurred")
	ErrTimeout       = &DomainError{Code: CodeTimeout, Message: "Operation timed out", Retryable: true}
	ErrUpstreamData  = &DomainError{Code: CodeUpstreamData, Message: "Data source unavailable", Retryable: true}
)

// IsRetryable reports whether err (or anything it wraps) is a retryable domain error
func IsRetryable(err error) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Retryable
	}
	return false
}
