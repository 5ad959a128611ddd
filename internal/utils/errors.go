package utils

import (
	"errors"
	"net/http"
)

// AppError is the tagged failure every layer below the HTTP surface returns.
// Code drives the HTTP status, Message is what the caller sees, Origin keeps
// the underlying store/provider error for logging.
type AppError struct {
	Code    string
	Message string
	Origin  error
}

func (appErr *AppError) Error() string {
	if appErr.Origin != nil {
		return appErr.Message + ": " + appErr.Origin.Error()
	}
	return appErr.Message
}

func (appErr *AppError) Unwrap() error {
	return appErr.Origin
}

// Standard error codes for the application
const (
	// Resource errors
	ErrNotFound     = "NOT_FOUND"
	ErrDuplicate    = "DUPLICATE"
	ErrInvalidInput = "INVALID_INPUT"

	// Authentication errors
	ErrUnauthorized       = "UNAUTHORIZED"
	ErrInvalidToken       = "INVALID_TOKEN"
	ErrInvalidCredentials = "INVALID_CREDENTIALS"

	// External collaborators
	ErrAuthProvider = "AUTH_PROVIDER_ERROR"
	ErrDatabase     = "DATABASE_ERROR"
)

func NewAppError(code string, message string, originalErr error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Origin:  originalErr,
	}
}

func NewNotFoundError(what string) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: what + " not found",
	}
}

func NewInvalidInputError(message string) *AppError {
	return &AppError{
		Code:    ErrInvalidInput,
		Message: message,
	}
}

func NewUnauthorizedError(reason string) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "Unauthorized: " + reason,
	}
}

// ErrorCode extracts the application error code from err, or ErrDatabase
// when err carries no code (untagged store failures default to internal).
func ErrorCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrDatabase
}

// IsErrorCode reports whether err is an AppError with the given code.
func IsErrorCode(err error, code string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AppErrorToHTTPStatus converts an AppError code to an HTTP status code.
func AppErrorToHTTPStatus(errorCode string) int {
	switch errorCode {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrInvalidInput, ErrInvalidCredentials:
		return http.StatusBadRequest
	case ErrUnauthorized, ErrInvalidToken:
		return http.StatusUnauthorized
	case ErrDuplicate:
		return http.StatusConflict
	case ErrDatabase, ErrAuthProvider:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
