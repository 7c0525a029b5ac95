// Package apperror defines the typed errors the API surfaces and their
// HTTP status mapping. Services return these; handlers translate them.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// ValidationError represents malformed/missing input or a duplicate unique field.
	ValidationError
	// AuthError represents a failed authentication (bad credentials or token).
	AuthError
	// NotFoundError represents a missing resource. Ownership mismatches are
	// reported as NotFoundError too, so existence never leaks across users.
	NotFoundError
	// DatabaseError represents an unexpected store failure.
	DatabaseError
)

// AppError carries a type, a user-facing message and an optional
// underlying error for logs.
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

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to the HTTP status the wire contract
// expects. Unexpected store failures deliberately answer 400 with no
// detail rather than 500.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case ValidationError:
		return http.StatusBadRequest
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case DatabaseError:
		return http.StatusBadRequest
	default:
		return http.StatusBadRequest
	}
}

func New(errType ErrorType, message string, underlying error) *AppError {
	return &AppError{Type: errType, Message: message, Err: underlying}
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string, underlying error) *AppError {
	return New(ValidationError, message, underlying)
}

// NewAuthError creates a new AuthError.
func NewAuthError(message string, underlying error) *AppError {
	return New(AuthError, message, underlying)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlying error) *AppError {
	return New(NotFoundError, message, underlying)
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlying error) *AppError {
	return New(DatabaseError, message, underlying)
}

func is(err error, t ErrorType) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == t
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool { return is(err, ValidationError) }

// IsAuthError checks if an error is an AuthError.
func IsAuthError(err error) bool { return is(err, AuthError) }

// IsNotFound checks if an error is a NotFoundError.
func IsNotFound(err error) bool { return is(err, NotFoundError) }

// StatusOf returns the HTTP status for any error, falling back to 400
// for errors outside the taxonomy.
func StatusOf(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode()
	}
	return http.StatusBadRequest
}
