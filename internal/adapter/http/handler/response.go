package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/newsdesk/news-classifier-web/internal/adapter/http/middleware"
	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

// Response represents the standard API response structure
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Meta    *MetaInfo   `json:"meta"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetaInfo identifies the request and, on session routes, the session it touched
type MetaInfo struct {
	Timestamp string `json:"timestamp"`
	RequestID string `json:"request_id"`
	SessionID string `json:"session_id,omitempty"`
}

func newMeta(c *gin.Context, data interface{}) *MetaInfo {
	meta := &MetaInfo{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		RequestID: c.GetString(middleware.RequestIDKey),
	}
	// no RequestID middleware in front
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}

	if state, ok := data.(*usecase.StateOutput); ok && state != nil {
		meta.SessionID = state.SessionID.String()
	} else if id, err := uuid.Parse(c.Param("id")); err == nil {
		meta.SessionID = id.String()
	}
	return meta
}

// respondSuccess writes data in the envelope. Session snapshots go stale as
// soon as the state changes, so they are never cached.
func respondSuccess(c *gin.Context, status int, data interface{}) {
	if _, ok := data.(*usecase.StateOutput); ok {
		c.Header("Cache-Control", "no-store")
	}
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Meta:    newMeta(c, data),
	})
}

// respondError writes an error envelope and stops the handler chain
func respondError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Response{
		Success: false,
		Error:   &ErrorInfo{Code: code, Message: message},
		Meta:    newMeta(c, nil),
	})
}
