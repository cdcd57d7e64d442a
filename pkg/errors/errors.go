package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode Stable machine-readable error code
type ErrorCode string

const (
	// Generic codes
	CodeInternal       ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest     ErrorCode = "BAD_REQUEST"
	CodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	CodeForbidden      ErrorCode = "FORBIDDEN"
	CodeNotFound       ErrorCode = "NOT_FOUND"
	CodeConflict       ErrorCode = "CONFLICT"
	CodeTooManyRequest ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation     ErrorCode = "VALIDATION_ERROR"
	CodeStorage        ErrorCode = "STORAGE_ERROR"

	// Business codes
	CodeCustomerNotFound ErrorCode = "CUSTOMER_NOT_FOUND"
	CodeOrderNotFound    ErrorCode = "ORDER_NOT_FOUND"
	CodeProductNotFound  ErrorCode = "PRODUCT_NOT_FOUND"
	CodeEmailExists      ErrorCode = "EMAIL_EXISTS"
	CodeInvalidFileType  ErrorCode = "INVALID_FILE_TYPE"
)

// AppError Application error carrying a code, a user-visible message and
// an optional wrapped cause. The cause is never serialized to clients.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatusCode HTTP status for the code
func (e *AppError) HTTPStatusCode() int {
	switch e.Code {
	case CodeBadRequest, CodeValidation, CodeInvalidFileType:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeCustomerNotFound, CodeOrderNotFound, CodeProductNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeEmailExists:
		return http.StatusConflict
	case CodeTooManyRequest:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New Create a new error
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap Wrap an underlying error
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common constructors

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequest, message)
}

func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// Storage wraps a store or filesystem failure. The wrapped detail stays
// server-side; clients only ever see the generic message.
func Storage(err error, message string) *AppError {
	return Wrap(err, CodeStorage, message)
}

// Business constructors

func CustomerNotFound() *AppError {
	return New(CodeCustomerNotFound, "customer not found")
}

func OrderNotFound() *AppError {
	return New(CodeOrderNotFound, "order not found")
}

func ProductNotFound() *AppError {
	return New(CodeProductNotFound, "product not found")
}

func EmailExists() *AppError {
	return New(CodeEmailExists, "email already exists")
}

func InvalidFileType(message string) *AppError {
	return New(CodeInvalidFileType, message)
}

// Is Check whether err carries the given code
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// AsAppError Convert any error to an AppError, wrapping unknown errors
// as internal ones so no raw detail leaks through the API boundary.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "internal server error")
}
