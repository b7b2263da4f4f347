// Package apperr carries typed application errors from the domain layer to
// the HTTP layer, where each type maps to a status code.
package apperr

import (
	"errors"
	"fmt"
)

// ErrorType classifies an application error for transport mapping.
type ErrorType int

const (
	TypeInternal ErrorType = iota
	TypeValidation
	TypeNotFound
	TypeUnauthorized
	TypeForbidden
	TypeConflict
	TypeUpstream
)

// AppError is an error with a transport classification. Message is safe to
// show callers; Err holds the underlying cause for logs.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds an AppError without an underlying cause.
func New(t ErrorType, message string) *AppError {
	return &AppError{Type: t, Message: message}
}

// Wrap builds an AppError around a cause.
func Wrap(t ErrorType, message string, err error) *AppError {
	return &AppError{Type: t, Message: message, Err: err}
}

// Validation is shorthand for a caller-input error.
func Validation(message string) *AppError { return New(TypeValidation, message) }

// NotFound is shorthand for a missing-resource error.
func NotFound(message string) *AppError { return New(TypeNotFound, message) }

// Conflict is shorthand for a uniqueness or state conflict.
func Conflict(message string) *AppError { return New(TypeConflict, message) }

// Internal is shorthand for wrapping an unexpected failure.
func Internal(message string, err error) *AppError { return Wrap(TypeInternal, message, err) }

// Upstream is shorthand for wrapping a failed dependency call.
func Upstream(message string, err error) *AppError { return Wrap(TypeUpstream, message, err) }

// From extracts the AppError from err's chain, or nil when there is none.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsNotFound reports whether err carries a not-found classification.
func IsNotFound(err error) bool {
	appErr := From(err)
	return appErr != nil && appErr.Type == TypeNotFound
}
