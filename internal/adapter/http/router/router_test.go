package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsdesk/news-classifier-web/internal/adapter/client"
	"github.com/newsdesk/news-classifier-web/internal/adapter/repository/memory"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/metrics"
	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool                `json:"success"`
	Data    usecase.StateOutput `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func setupApp(t *testing.T, remote http.HandlerFunc) *gin.Engine {
	t.Helper()
	server := httptest.NewServer(remote)
	t.Cleanup(server.Close)

	reg := metrics.NewRegistry()
	m := metrics.New(reg)
	classifier := client.NewClassifier(client.NewClassificationClient(server.URL, 5*time.Second), m, nil)

	var sessionUC usecase.SessionUsecase
	repo := memory.NewSessionRepository(time.Minute, func(s *usecase.Session) { sessionUC.Expire(s) })
	t.Cleanup(repo.Close)
	sessionUC = usecase.NewSessionUsecase(repo, classifier, m, nil)

	return Setup(Deps{
		SessionUC:      sessionUC,
		ClassifierURL:  server.URL,
		MaxUploadBytes: 1024,
		Metrics:        m,
		Gatherer:       reg,
	})
}

func do(t *testing.T, r *gin.Engine, method, path string, body []byte) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func TestRouter_TextFlow(t *testing.T) {
	var gotPath string
	r := setupApp(t, func(w http.ResponseWriter, req *http.Request) {
		gotPath = req.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"category":"Science/Tech","text":"New chip unveiled"}`))
	})

	w, created := do(t, r, http.MethodPost, "/api/v1/sessions", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	base := "/api/v1/sessions/" + created.Data.SessionID.String()

	w, _ = do(t, r, http.MethodPut, base+"/text", []byte(`{"text":"New chip unveiled"}`))
	require.Equal(t, http.StatusOK, w.Code)

	w, predicted := do(t, r, http.MethodPost, base+"/predict?save=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/predict-and-log", gotPath)
	require.NotNil(t, predicted.Data.Prediction)
	assert.Equal(t, "Science/Tech", predicted.Data.Prediction.Category)
	assert.Equal(t, "#EC4899", predicted.Data.Prediction.Color)
	assert.True(t, predicted.Data.WasSaved)
	assert.False(t, predicted.Data.IsLoading)

	w, reset := do(t, r, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, reset.Data.Prediction)
	assert.Empty(t, reset.Data.InputText)

	w, _ = do(t, r, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, gone := do(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", gone.Error.Code)
}

func TestRouter_RemoteFailureIsState(t *testing.T) {
	r := setupApp(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is loading"}`))
	})

	_, created := do(t, r, http.MethodPost, "/api/v1/sessions", nil)
	base := "/api/v1/sessions/" + created.Data.SessionID.String()
	do(t, r, http.MethodPut, base+"/text", []byte(`{"text":"headline"}`))

	w, failed := do(t, r, http.MethodPost, base+"/predict", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, failed.Data.Error)
	assert.Equal(t, "Model is loading", *failed.Data.Error)
	assert.Equal(t, "failed", failed.Data.Status)
}

func TestRouter_PredictSurvivesClientTimeout(t *testing.T) {
	r := setupApp(t, func(w http.ResponseWriter, req *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"category":"Sports","text":"Late winner"}`))
	})

	_, created := do(t, r, http.MethodPost, "/api/v1/sessions", nil)
	base := "/api/v1/sessions/" + created.Data.SessionID.String()
	do(t, r, http.MethodPut, base+"/text", []byte(`{"text":"Late winner"}`))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	req := httptest.NewRequest(http.MethodPost, base+"/predict", nil).WithContext(ctx)
	r.ServeHTTP(httptest.NewRecorder(), req)

	w, state := do(t, r, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, state.Data.Prediction)
	assert.Equal(t, "Sports", state.Data.Prediction.Category)
	assert.Nil(t, state.Data.Error)
	assert.False(t, state.Data.IsLoading)
}

func TestRouter_Operational(t *testing.T) {
	r := setupApp(t, func(w http.ResponseWriter, req *http.Request) {})

	w, _ := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/ready", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = do(t, r, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "news_classifier_http_requests_total")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
