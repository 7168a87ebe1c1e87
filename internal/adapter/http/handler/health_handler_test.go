package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubCounter struct {
	count int64
	err   error
}

func (s stubCounter) Count(context.Context) (int64, error) {
	return s.count, s.err
}

func serveHealth(h *HealthHandler, path string) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)

	req, _ := http.NewRequest("GET", path, http.NoBody)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthHandler_Health(t *testing.T) {
	t.Run("healthy with live sessions", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(stubCounter{count: 2}, "http://classifier:5000"), "/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var status HealthStatus
		err := json.Unmarshal(w.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.Equal(t, "healthy", status.Status)
		assert.Equal(t, "ok", status.Components["sessions"])
		assert.Equal(t, "http://classifier:5000", status.Components["classifier"])
		assert.Equal(t, int64(2), status.ActiveSessions)
	})

	t.Run("healthy when no dependencies", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(nil, ""), "/health")

		assert.Equal(t, http.StatusOK, w.Code)

		var status HealthStatus
		err := json.Unmarshal(w.Body.Bytes(), &status)
		assert.NoError(t, err)
		assert.Equal(t, "not configured", status.Components["sessions"])
		assert.Equal(t, "not configured", status.Components["classifier"])
	})

	t.Run("unhealthy when session store fails", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(stubCounter{err: errors.New("closed")}, "http://classifier:5000"), "/health")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "unhealthy")
	})
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(stubCounter{}, "http://classifier:5000"), "/ready")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("not ready without classifier", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(stubCounter{}, ""), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "classifier not configured")
	})

	t.Run("not ready when session store fails", func(t *testing.T) {
		w := serveHealth(NewHealthHandler(stubCounter{err: errors.New("closed")}, "http://classifier:5000"), "/ready")

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}
