package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	ErrCodeValidation   = "VALIDATION"
	ErrCodeQuizNotFound = "QUIZ_NOT_FOUND"
	ErrCodeUserNotFound = "USER_NOT_FOUND"
	ErrCodeConflict     = "TRANSACTION_CONFLICT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInternal     = "INTERNAL"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string         // Error code (e.g., "QUIZ_NOT_FOUND", "VALIDATION")
	Message string         // Human-readable error message
	Status  int            // HTTP status code
	Details map[string]any // Optional structured details (field errors)
	Err     error          // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail returns a copy of the error with an extra detail entry.
func (e *AppError) WithDetail(key string, value any) *AppError {
	cp := *e
	cp.Details = make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		cp.Details[k] = v
	}
	cp.Details[key] = value
	return &cp
}

// NewValidationError creates a new VALIDATION error for a single field
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  http.StatusBadRequest,
		Details: map[string]any{field: reason},
	}
}

// NewQuizNotFoundError is returned when a lesson has no published quiz.
func NewQuizNotFoundError(lessonID string) *AppError {
	return &AppError{
		Code:    ErrCodeQuizNotFound,
		Message: fmt.Sprintf("no published quiz for lesson %s", lessonID),
		Status:  http.StatusNotFound,
	}
}

// NewUserNotFoundError reports an authenticated user with no backing record.
// It is an internal failure: a trusted identity should always resolve.
func NewUserNotFoundError(userID string) *AppError {
	return &AppError{
		Code:    ErrCodeUserNotFound,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     fmt.Errorf("user %s not found", userID),
	}
}

// NewConflictError wraps a transaction that kept conflicting after retries.
func NewConflictError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeConflict,
		Message: "concurrent update, retry with the same idempotency key",
		Status:  http.StatusConflict,
		Err:     err,
	}
}

// NewUnauthorizedError creates a new UNAUTHORIZED error
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Status:  http.StatusUnauthorized,
	}
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  http.StatusNotFound,
	}
}

// NewInternalError creates a new INTERNAL error
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  http.StatusBadRequest,
	}
}

// As finds the first AppError in err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Code returns the AppError code in err's chain, or INTERNAL.
func Code(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return ErrCodeInternal
}

// IsRetryable reports whether the client may safely resend the same request.
func IsRetryable(err error) bool {
	return Code(err) == ErrCodeConflict
}
