package dto

import apperrors "delitrack/internal/errors"

const (
	ErrorCodeValidation = "VALIDATION_ERROR"
	ErrorCodeNotFound   = "NOT_FOUND"
	ErrorCodeInternal   = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	TraceID string                       `json:"traceId,omitempty"`
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details,omitempty"`
}
