package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCounter reports the number of live sessions
type SessionCounter interface {
	Count(ctx context.Context) (int64, error)
}

// HealthHandler handles health check endpoints
type HealthHandler struct {
	sessions      SessionCounter
	classifierURL string
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions SessionCounter, classifierURL string) *HealthHandler {
	return &HealthHandler{
		sessions:      sessions,
		classifierURL: classifierURL,
	}
}

// HealthStatus represents the health check response
type HealthStatus struct {
	Status         string            `json:"status"`
	Components     map[string]string `json:"components"`
	ActiveSessions int64             `json:"active_sessions"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	components := make(map[string]string)
	healthy := true
	var active int64

	if h.sessions != nil {
		count, err := h.sessions.Count(ctx)
		if err != nil {
			components["sessions"] = "error: " + err.Error()
			healthy = false
		} else {
			components["sessions"] = "ok"
			active = count
		}
	} else {
		components["sessions"] = "not configured"
	}

	// The remote service is not probed; a classifier outage surfaces in session state.
	if h.classifierURL != "" {
		components["classifier"] = h.classifierURL
	} else {
		components["classifier"] = "not configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !healthy {
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthStatus{
		Status:         status,
		Components:     components,
		ActiveSessions: active,
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if h.classifierURL == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "classifier not configured"})
		return
	}

	if h.sessions != nil {
		if _, err := h.sessions.Count(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "reason": "session store unavailable"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
