// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rmarques/marketgate/internal/errors"
)

// ErrorBody carries the machine-readable error code and a human-readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorEnvelope is the uniform error response shape for every gateway endpoint.
type ErrorEnvelope struct {
	Error ErrorBody `json:"error"`
}

// Meta carries pagination metadata for list responses.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"total_pages"`
}

// DataEnvelope is the uniform success response shape: a data payload plus
// optional pagination metadata.
type DataEnvelope struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// HandleErrorGin maps domain errors to HTTP status codes and writes the uniform
// error envelope. Unknown errors are reported as internal_error with a generic
// message; the full error is logged server-side only.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var body ErrorBody

	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		body = ErrorBody{
			Code:    "not_found",
			Message: "The requested resource was not found",
		}

	case apperrors.Is(err, apperrors.ErrConflict):
		statusCode = http.StatusConflict
		body = ErrorBody{
			Code:    "conflict",
			Message: "A conflict occurred with existing data",
		}

	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusUnprocessableEntity
		body = ErrorBody{
			Code:    "validation_error",
			Message: err.Error(),
		}

	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		body = ErrorBody{
			Code:    "unauthorized",
			Message: "Authentication is required",
		}

	case apperrors.Is(err, apperrors.ErrForbidden):
		statusCode = http.StatusForbidden
		body = ErrorBody{
			Code:    "forbidden",
			Message: "You don't have permission to access this resource",
		}

	case apperrors.Is(err, apperrors.ErrRateLimited):
		statusCode = http.StatusTooManyRequests
		body = ErrorBody{
			Code:    "rate_limit_exceeded",
			Message: "Too many requests. Please retry later.",
		}

	case apperrors.Is(err, apperrors.ErrUnavailable):
		statusCode = http.StatusServiceUnavailable
		body = ErrorBody{
			Code:    "service_unavailable",
			Message: "A required backing service is unavailable",
		}

	default:
		// For unknown/internal errors, don't expose details to the client
		statusCode = http.StatusInternalServerError
		body = ErrorBody{
			Code:    "internal_error",
			Message: "An internal error occurred",
		}
	}

	// Log the full error details (including wrapped errors)
	if logger != nil {
		logger.Error("request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", body.Code),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, ErrorEnvelope{Error: body})
}

// HandleBadRequestGin writes a 400 Bad Request envelope for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: ErrorBody{
		Code:    "bad_request",
		Message: err.Error(),
	}})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity envelope for validation errors.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorEnvelope{Error: ErrorBody{
		Code:    "validation_error",
		Message: err.Error(),
	}})
}

// Data writes a success envelope without pagination metadata.
func Data(c *gin.Context, statusCode int, data any) {
	c.JSON(statusCode, DataEnvelope{Data: data})
}

// DataWithMeta writes a success envelope with pagination metadata.
func DataWithMeta(c *gin.Context, statusCode int, data any, meta Meta) {
	c.JSON(statusCode, DataEnvelope{Data: data, Meta: &meta})
}
