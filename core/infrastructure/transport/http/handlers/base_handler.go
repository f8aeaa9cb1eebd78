package handlers

import (
	"encoding/json"
	"net/http"
	"sort"

	"github.com/hyperterse/dataexplorer/core/infrastructure/logging"
	"github.com/hyperterse/dataexplorer/core/infrastructure/transport/http/dto"
	"github.com/hyperterse/dataexplorer/core/shared/errors"
)

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	logger logging.Logger
}

// NewBaseHandler creates a new base handler
func NewBaseHandler(tag string) *BaseHandler {
	return &BaseHandler{
		logger: logging.New(tag),
	}
}

// Logger returns the handler's tagged logger
func (h *BaseHandler) Logger() logging.Logger {
	return h.logger
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// WriteText writes a pre-rendered body with the given content type
func (h *BaseHandler) WriteText(w http.ResponseWriter, statusCode int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(statusCode)
	if _, err := w.Write([]byte(body)); err != nil {
		h.logger.Errorf("Failed to write response: %v", err)
	}
}

// WriteError writes an error response. Errors without an AppError in their
// chain are reported as internal errors.
func (h *BaseHandler) WriteError(w http.ResponseWriter, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.NewAppError(errors.ErrCodeInternalError, err.Error(), err)
	}

	message := appErr.Message
	if appErr.Err != nil && appErr.Code != errors.ErrCodeInternalError {
		message = appErr.Message + ": " + appErr.Err.Error()
	}

	h.WriteJSON(w, appErr.Status, dto.ErrorResponse{
		Success: false,
		Code:    string(appErr.Code),
		Error:   message,
	})
}

// WriteValidationError writes a validation error response
func (h *BaseHandler) WriteValidationError(w http.ResponseWriter, validationErrors map[string]string) {
	fields := make([]string, 0, len(validationErrors))
	for field := range validationErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	details := make([]dto.ErrorDetail, 0, len(fields))
	for _, field := range fields {
		details = append(details, dto.ErrorDetail{
			Field:   field,
			Tag:     validationErrors[field],
			Message: "Validation failed",
		})
	}

	h.WriteJSON(w, http.StatusBadRequest, dto.ValidationErrorResponse{
		Success: false,
		Code:    string(errors.ErrCodeValidationError),
		Error:   "Validation failed",
		Details: details,
	})
}

// WriteSuccess writes a success response
func (h *BaseHandler) WriteSuccess(w http.ResponseWriter, data any) {
	h.WriteJSON(w, http.StatusOK, data)
}
