package errors_test

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hyperterse/dataexplorer/core/shared/errors"
)

func TestNewAppError(t *testing.T) {
	tests := []struct {
		name           string
		code           errors.ErrorCode
		message        string
		err            error
		expectedStatus int
		expectedExit   int
	}{
		{
			name:           "query not found",
			code:           errors.ErrCodeQueryNotFound,
			message:        "query 'x' not found",
			expectedStatus: http.StatusNotFound,
			expectedExit:   2,
		},
		{
			name:           "validation error",
			code:           errors.ErrCodeValidationError,
			message:        "invalid input",
			expectedStatus: http.StatusBadRequest,
			expectedExit:   2,
		},
		{
			name:           "remote status",
			code:           errors.ErrCodeRemoteStatus,
			message:        "remote rejected query",
			err:            stderrors.New("404 Not Found"),
			expectedStatus: http.StatusBadGateway,
			expectedExit:   1,
		},
		{
			name:           "internal error",
			code:           errors.ErrCodeInternalError,
			message:        "internal error",
			err:            stderrors.New("underlying error"),
			expectedStatus: http.StatusInternalServerError,
			expectedExit:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := errors.NewAppError(tt.code, tt.message, tt.err)
			assert.Equal(t, tt.code, appErr.Code)
			assert.Equal(t, tt.message, appErr.Message)
			assert.Equal(t, tt.expectedStatus, appErr.Status)
			assert.Equal(t, tt.expectedExit, appErr.ExitCode())
			if tt.err != nil {
				assert.Equal(t, tt.err, appErr.Unwrap())
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	withCause := errors.NewAppError(errors.ErrCodeRemoteStatus, "query failed", stderrors.New("404 Not Found"))
	assert.Equal(t, "REMOTE_STATUS: query failed (404 Not Found)", withCause.Error())

	withoutCause := errors.NewAppError(errors.ErrCodeConfigError, "missing host", nil)
	assert.Equal(t, "CONFIG_ERROR: missing host", withoutCause.Error())
}

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "query not found", err: errors.NewAppError(errors.ErrCodeQueryNotFound, "query not found", nil), expected: true},
		{name: "wrapped", err: fmt.Errorf("ctx: %w", errors.NewAppError(errors.ErrCodeQueryNotFound, "x", nil)), expected: true},
		{name: "other error", err: errors.NewAppError(errors.ErrCodeInternalError, "internal error", nil), expected: false},
		{name: "non-app error", err: stderrors.New("regular error"), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsNotFound(tt.err))
		})
	}
}

func TestIsValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "validation error", err: errors.NewAppError(errors.ErrCodeValidationError, "validation failed", nil), expected: true},
		{name: "invalid input", err: errors.NewAppError(errors.ErrCodeInvalidInput, "invalid input", nil), expected: true},
		{name: "other error", err: errors.NewAppError(errors.ErrCodeInternalError, "internal error", nil), expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsValidationError(tt.err))
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, errors.ExitCode(nil))
	assert.Equal(t, 1, errors.ExitCode(stderrors.New("boom")))
	assert.Equal(t, 2, errors.ExitCode(fmt.Errorf("wrap: %w", errors.NewAppError(errors.ErrCodeConfigError, "bad", nil))))
}
