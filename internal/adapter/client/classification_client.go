package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
	"github.com/newsdesk/news-classifier-web/internal/domain/service"
)

// Endpoints exposed by the classification service
const (
	PathPredict       = "/predict"
	PathPredictAndLog = "/predict-and-log"
	PathPredictFile   = "/predict-file"
)

// RequestIDHeader carries the inbound request ID to the service
const RequestIDHeader = "X-Request-ID"

// maxErrorBodyBytes bounds how much of a failed response is read
const maxErrorBodyBytes = 64 << 10

// PredictRequest represents a text request to the classification service
type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse represents a successful response from the classification service
type PredictResponse struct {
	Category string `json:"category"`
	Text     string `json:"text"`
}

// ErrorResponse represents the body of a failed response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ClassificationClient is an HTTP client for the classification service.
// Every call is a single attempt; failures are returned to the caller as is.
type ClassificationClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClassificationClient creates a new classification service client
func NewClassificationClient(baseURL string, timeout time.Duration) *ClassificationClient {
	return &ClassificationClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured service address
func (c *ClassificationClient) BaseURL() string {
	return c.baseURL
}

// Predict classifies text
func (c *ClassificationClient) Predict(ctx context.Context, text, requestID string) (*PredictResponse, error) {
	return c.postText(ctx, PathPredict, text, requestID)
}

// PredictAndLog classifies text and asks the service to persist it
func (c *ClassificationClient) PredictAndLog(ctx context.Context, text, requestID string) (*PredictResponse, error) {
	return c.postText(ctx, PathPredictAndLog, text, requestID)
}

// PredictFile uploads a text file for classification
func (c *ClassificationClient) PredictFile(ctx context.Context, filename string, content []byte, requestID string) (*PredictResponse, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile(entity.FileFieldName, filename)
	if err != nil {
		return nil, &service.TransportError{Op: "create multipart form", Err: err}
	}
	if _, err := part.Write(content); err != nil {
		return nil, &service.TransportError{Op: "write multipart form", Err: err}
	}
	if err := writer.Close(); err != nil {
		return nil, &service.TransportError{Op: "close multipart form", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+PathPredictFile, &body)
	if err != nil {
		return nil, &service.TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req, requestID)
}

func (c *ClassificationClient) postText(ctx context.Context, path, text, requestID string) (*PredictResponse, error) {
	body, err := json.Marshal(PredictRequest{Text: text})
	if err != nil {
		return nil, &service.TransportError{Op: "marshal request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, &service.TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, requestID)
}

func (c *ClassificationClient) do(req *http.Request, requestID string) (*PredictResponse, error) {
	req.Header.Set("Accept", "application/json")
	if requestID != "" {
		req.Header.Set(RequestIDHeader, requestID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &service.TransportError{Op: "send request", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &service.RemoteError{
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(resp.Body),
		}
	}

	var result PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &service.TransportError{Op: "decode response", Err: err}
	}
	if result.Category == "" {
		return nil, &service.TransportError{Op: "decode response", Err: errors.New("missing category")}
	}

	return &result, nil
}

// remoteMessage extracts the error field of a failed response body,
// falling back to service.DefaultRemoteMessage.
func remoteMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodyBytes))
	if err != nil {
		return service.DefaultRemoteMessage
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(raw, &errResp); err != nil || strings.TrimSpace(errResp.Error) == "" {
		return service.DefaultRemoteMessage
	}

	return errResp.Error
}
