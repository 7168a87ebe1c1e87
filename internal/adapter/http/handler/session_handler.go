package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

// multipartOverhead is the room left for multipart headers on top of the file limit
const multipartOverhead = 64 << 10

// KeepAliveInterval is how often an idle event stream sends a ping
var KeepAliveInterval = 15 * time.Second

// SessionHandler handles session-related HTTP requests
type SessionHandler struct {
	sessionUC      usecase.SessionUsecase
	maxUploadBytes int64
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessionUC usecase.SessionUsecase, maxUploadBytes int64) *SessionHandler {
	return &SessionHandler{
		sessionUC:      sessionUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// SetTextInput is the body of PUT /api/v1/sessions/:id/text
type SetTextInput struct {
	Text *string `json:"text" binding:"required"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	output, err := h.sessionUC.Create(c.Request.Context())
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, output)
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	output, err := h.sessionUC.Get(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.sessionUC.Delete(c.Request.Context(), id); err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"session_id": id})
}

// SetText handles PUT /api/v1/sessions/:id/text
func (h *SessionHandler) SetText(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	var input SetTextInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.sessionUC.SetInputText(c.Request.Context(), id, *input.Text)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// SelectFile handles PUT /api/v1/sessions/:id/file
func (h *SessionHandler) SelectFile(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+multipartOverhead)
	file, err := ReadUploadFile(c, h.maxUploadBytes)
	if err != nil {
		if errors.Is(err, ErrFileTooLarge) {
			respondError(c, http.StatusRequestEntityTooLarge, CodeTooLarge, err.Error())
			return
		}
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.sessionUC.SelectFile(c.Request.Context(), id, file)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// ClearFile handles DELETE /api/v1/sessions/:id/file
func (h *SessionHandler) ClearFile(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	output, err := h.sessionUC.SelectFile(c.Request.Context(), id, nil)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Predict handles POST /api/v1/sessions/:id/predict
func (h *SessionHandler) Predict(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	save, err := ParseSaveFlag(c)
	if err != nil {
		HandleInvalidRequest(c, err.Error())
		return
	}

	output, err := h.sessionUC.SubmitText(c.Request.Context(), id, save)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// PredictFile handles POST /api/v1/sessions/:id/predict-file
func (h *SessionHandler) PredictFile(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	output, err := h.sessionUC.SubmitFile(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Reset handles POST /api/v1/sessions/:id/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	output, err := h.sessionUC.Reset(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// Events handles GET /api/v1/sessions/:id/events.
// It streams a "state" event per snapshot; only the latest pending snapshot
// is kept when the client falls behind.
func (h *SessionHandler) Events(c *gin.Context) {
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	updates := make(chan *usecase.StateOutput, 1)
	stop, done, err := h.sessionUC.Watch(c.Request.Context(), id, func(out *usecase.StateOutput) {
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- out:
		default:
		}
	})
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}
	defer stop()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	keepAlive := time.NewTicker(KeepAliveInterval)
	defer keepAlive.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case out := <-updates:
			h.sendEvent(c, "state", out)
		case <-done:
			select {
			case out := <-updates:
				h.sendEvent(c, "state", out)
			default:
			}
			h.sendEvent(c, "closed", gin.H{"session_id": id})
			return
		case <-keepAlive.C:
			h.sendEvent(c, "ping", time.Now().UTC().Format(time.RFC3339))
		}
	}
}

func (h *SessionHandler) sendEvent(c *gin.Context, name string, data interface{}) {
	c.SSEvent(name, data)
	c.Writer.Flush()
}

func (h *SessionHandler) sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := ExtractUUIDParam(c, "id")
	if err != nil {
		HandleInvalidUUID(c, "session id")
		return uuid.Nil, false
	}
	return id, true
}
