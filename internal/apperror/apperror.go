// Package apperror defines the error taxonomy shared by the service layer and
// both HTTP surfaces. Handlers match with errors.Is and translate each case
// into a flash notice (web) or a status code (API); no error here is fatal.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrValidation     = errors.New("validation failed")
	ErrDuplicateUser  = errors.New("username already exists")
	ErrAuthentication = errors.New("invalid credentials")
	ErrUnauthorized   = errors.New("not authorized")
	ErrNotFound       = errors.New("not found")
)

// AppError pairs a taxonomy sentinel with a human-readable message and,
// optionally, the form field that caused it.
type AppError struct {
	Err     error
	Message string
	Field   string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Validation returns an AppError for a missing or invalid field.
func Validation(field, message string) *AppError {
	return &AppError{Err: ErrValidation, Message: message, Field: field}
}

// DuplicateUser returns an AppError for a username collision.
func DuplicateUser(username string) *AppError {
	return &AppError{
		Err:     ErrDuplicateUser,
		Message: fmt.Sprintf("username %q is already taken", username),
		Field:   "username",
	}
}

// NotFound returns an AppError for a missing resource.
func NotFound(resource string, id int64) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s %d not found", resource, id),
	}
}
