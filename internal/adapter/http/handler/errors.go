package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

// Error codes of the response envelope
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeTooLarge       = "PAYLOAD_TOO_LARGE"
	CodeInternal       = "INTERNAL_ERROR"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Submit failures never get here: they are part of the returned session state.
// Malformed input is rejected by the handlers before the usecase is called.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrSessionNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       CodeNotFound,
			Message:    "session not found",
		}
	case errors.Is(err, usecase.ErrRequestInFlight):
		return ErrorResponse{
			StatusCode: http.StatusConflict,
			Code:       CodeConflict,
			Message:    "a classification request is already in flight",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternal,
			Message:    "internal server error",
		}
	}
}

// HandleUsecaseError handles a usecase error by sending an appropriate HTTP response.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid "+paramName)
}

// HandleInvalidRequest handles a generic invalid request error.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}
