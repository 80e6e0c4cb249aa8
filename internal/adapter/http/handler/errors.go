package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/exploretech/tweet-classifier/internal/domain/service"
	"github.com/exploretech/tweet-classifier/internal/usecase"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase and dispatcher errors to HTTP error responses.
// Client-caused errors carry the wrapped message; server-side errors do not.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, service.ErrValidation):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       "VALIDATION_ERROR",
			Message:    err.Error(),
		}
	case errors.Is(err, service.ErrArtifactNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "ARTIFACT_NOT_FOUND",
			Message:    "model artifact unavailable",
		}
	case errors.Is(err, service.ErrFeatureExtraction):
		return ErrorResponse{
			StatusCode: http.StatusUnprocessableEntity,
			Code:       "FEATURE_EXTRACTION_ERROR",
			Message:    err.Error(),
		}
	case errors.Is(err, service.ErrUnknownLabel):
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "UNKNOWN_LABEL",
			Message:    "classifier produced an unmapped label",
		}
	case errors.Is(err, usecase.ErrPredictionNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "prediction not found",
		}
	case errors.Is(err, usecase.ErrPageNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       "NOT_FOUND",
			Message:    "page not found",
		}
	case errors.Is(err, usecase.ErrHistoryUnavailable):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "SERVICE_UNAVAILABLE",
			Message:    "prediction history is not enabled",
		}
	case errors.Is(err, usecase.ErrDatasetUnavailable):
		return ErrorResponse{
			StatusCode: http.StatusServiceUnavailable,
			Code:       "SERVICE_UNAVAILABLE",
			Message:    "dataset is not loaded",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	_ = c.Error(err)
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid "+paramName)
}

// HandleInvalidRequest handles a request body or query that failed binding.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, "INVALID_REQUEST", message)
}
