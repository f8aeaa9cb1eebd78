package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Input errors
	ErrCodeInvalidInput    ErrorCode = "INVALID_INPUT"
	ErrCodeValidationError ErrorCode = "VALIDATION_ERROR"
	ErrCodeQueryNotFound   ErrorCode = "QUERY_NOT_FOUND"
	ErrCodeConfigError     ErrorCode = "CONFIG_ERROR"

	// Remote errors
	ErrCodeRemoteStatus  ErrorCode = "REMOTE_STATUS"
	ErrCodeRequestFailed ErrorCode = "REQUEST_FAILED"

	// Local errors
	ErrCodeRenderFailed  ErrorCode = "RENDER_FAILED"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// AppError represents an application error with code and context
type AppError struct {
	Code    ErrorCode
	Message string
	Err     error
	Status  int // HTTP status code
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// ExitCode maps the error code to a process exit status
func (e *AppError) ExitCode() int {
	switch e.Code {
	case ErrCodeInvalidInput, ErrCodeValidationError, ErrCodeQueryNotFound, ErrCodeConfigError:
		return 2
	default:
		return 1
	}
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Status:  getHTTPStatus(code),
	}
}

// WrapError wraps an existing error with an error code and message
func WrapError(code ErrorCode, message string, err error) *AppError {
	return NewAppError(code, message, err)
}

// getHTTPStatus maps error codes to HTTP status codes
func getHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeQueryNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidInput, ErrCodeValidationError:
		return http.StatusBadRequest
	case ErrCodeRemoteStatus, ErrCodeRequestFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// As returns the AppError in err's chain, if any
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeQueryNotFound
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	appErr, ok := As(err)
	return ok && (appErr.Code == ErrCodeValidationError || appErr.Code == ErrCodeInvalidInput)
}

// ExitCode returns the exit status for err: 0 for nil, the AppError mapping
// when one is in the chain, 1 otherwise
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if appErr, ok := As(err); ok {
		return appErr.ExitCode()
	}
	return 1
}
