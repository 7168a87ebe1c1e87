package service

import (
	"context"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
)

// Classifier defines the interface for the remote news classification service
type Classifier interface {
	// Predict classifies text without persisting it
	Predict(ctx context.Context, text string) (*entity.ClassificationResult, error)

	// PredictAndLog classifies text and asks the service to store the input/result pair
	PredictAndLog(ctx context.Context, text string) (*entity.ClassificationResult, error)

	// PredictFile classifies the content of an uploaded text file
	PredictFile(ctx context.Context, file *entity.UploadFile) (*entity.ClassificationResult, error)
}
