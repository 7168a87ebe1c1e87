package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

func TestMapUsecaseError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
	}{
		{
			name:               "session not found",
			err:                usecase.ErrSessionNotFound,
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       "NOT_FOUND",
			expectedMessage:    "session not found",
		},
		{
			name:               "request in flight",
			err:                usecase.ErrRequestInFlight,
			expectedStatusCode: http.StatusConflict,
			expectedCode:       "CONFLICT",
			expectedMessage:    "a classification request is already in flight",
		},
		{
			name:               "wrapped not found",
			err:                fmt.Errorf("lookup: %w", usecase.ErrSessionNotFound),
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       "NOT_FOUND",
			expectedMessage:    "session not found",
		},
		{
			name:               "unknown error",
			err:                errors.New("some unknown error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "INTERNAL_ERROR",
			expectedMessage:    "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MapUsecaseError(tt.err)

			assert.Equal(t, tt.expectedStatusCode, result.StatusCode)
			assert.Equal(t, tt.expectedCode, result.Code)
			assert.Equal(t, tt.expectedMessage, result.Message)
		})
	}
}

func TestHandleUsecaseError(t *testing.T) {
	tests := []struct {
		name               string
		err                error
		expectedStatusCode int
		expectedErrors     int
	}{
		{
			name:               "session not found",
			err:                usecase.ErrSessionNotFound,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "internal error is attached to the context",
			err:                errors.New("internal"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedErrors:     1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleUsecaseError(c, tt.err)

			assert.Equal(t, tt.expectedStatusCode, w.Code)
			assert.Len(t, c.Errors, tt.expectedErrors)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestHandleInvalidUUID(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleInvalidUUID(c, "session id")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid session id")
}

func TestHandleInvalidRequest(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	HandleInvalidRequest(c, "missing required field")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing required field")
}
