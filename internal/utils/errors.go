package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrorCodeConflict          ErrorCode = "CONFLICT"
	ErrorCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrorCodeUpstreamError     ErrorCode = "UPSTREAM_ERROR"
	ErrorCodeDatabaseError     ErrorCode = "DATABASE_ERROR"
	ErrorCodeRateLimitExceeded ErrorCode = "RATE_LIMIT_EXCEEDED"
	ErrorCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// AppError is the error type handlers know how to render. Cause is kept for
// logging and for the "error" field of 5xx responses.
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"-"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// CauseMessage returns the text of the underlying error, if any.
func (e *AppError) CauseMessage() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

func NewError(code ErrorCode, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func NewErrorWithCause(code ErrorCode, message string, statusCode int, cause error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Cause:      cause,
	}
}

// AsAppError extracts an *AppError from err, or wraps err as an internal
// error carrying fallbackMessage.
func AsAppError(err error, fallbackMessage string) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(fallbackMessage, err)
}

// Common error constructors
func NewInvalidInputError(message string) *AppError {
	return NewError(ErrorCodeInvalidInput, message, http.StatusBadRequest)
}

func NewConflictError(message string) *AppError {
	return NewError(ErrorCodeConflict, message, http.StatusConflict)
}

func NewNotFoundError(message string) *AppError {
	return NewError(ErrorCodeNotFound, message, http.StatusNotFound)
}

func NewUpstreamError(message string, err error) *AppError {
	return NewErrorWithCause(ErrorCodeUpstreamError, message, http.StatusInternalServerError, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewErrorWithCause(ErrorCodeDatabaseError, message, http.StatusInternalServerError, err)
}

func NewUnauthorizedError() *AppError {
	return NewError(
		ErrorCodeUnauthorized,
		"Invalid or missing authentication",
		http.StatusUnauthorized,
	)
}

func NewRateLimitError() *AppError {
	return NewError(
		ErrorCodeRateLimitExceeded,
		"Too many requests",
		http.StatusTooManyRequests,
	)
}

func NewInternalError(message string, err error) *AppError {
	if message == "" {
		message = "An unexpected error occurred"
	}
	return NewErrorWithCause(ErrorCodeInternalError, message, http.StatusInternalServerError, err)
}
