package client

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
	"github.com/newsdesk/news-classifier-web/internal/domain/service"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/metrics"
)

// Classifier adapts ClassificationClient to the service.Classifier interface
type Classifier struct {
	client  *ClassificationClient
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewClassifier creates a new Classifier. metrics may be nil.
func NewClassifier(client *ClassificationClient, m *metrics.Metrics, logger *zap.Logger) service.Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Classifier{
		client:  client,
		metrics: m,
		logger:  logger.Named("classifier"),
	}
}

// Predict classifies text
func (c *Classifier) Predict(ctx context.Context, text string) (*entity.ClassificationResult, error) {
	return c.call(ctx, PathPredict, func(requestID string) (*PredictResponse, error) {
		return c.client.Predict(ctx, text, requestID)
	})
}

// PredictAndLog classifies text and persists it on the service side
func (c *Classifier) PredictAndLog(ctx context.Context, text string) (*entity.ClassificationResult, error) {
	return c.call(ctx, PathPredictAndLog, func(requestID string) (*PredictResponse, error) {
		return c.client.PredictAndLog(ctx, text, requestID)
	})
}

// PredictFile classifies an uploaded file
func (c *Classifier) PredictFile(ctx context.Context, file *entity.UploadFile) (*entity.ClassificationResult, error) {
	return c.call(ctx, PathPredictFile, func(requestID string) (*PredictResponse, error) {
		return c.client.PredictFile(ctx, file.Name, file.Content, requestID)
	})
}

func (c *Classifier) call(ctx context.Context, endpoint string, send func(requestID string) (*PredictResponse, error)) (*entity.ClassificationResult, error) {
	requestID := service.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}

	start := time.Now()
	resp, err := send(requestID)
	elapsed := time.Since(start)

	if err != nil {
		outcome := metrics.OutcomeTransportError
		if service.IsRemoteError(err) {
			outcome = metrics.OutcomeRemoteError
		}
		c.metrics.ObserveClassifierCall(endpoint, outcome, elapsed)
		c.logger.Warn("Classification request failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	c.metrics.ObserveClassifierCall(endpoint, metrics.OutcomeSuccess, elapsed)
	c.logger.Debug("Classification request completed",
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.String("category", resp.Category),
		zap.Duration("latency", elapsed),
	)

	return &entity.ClassificationResult{
		Category: resp.Category,
		Text:     resp.Text,
	}, nil
}
