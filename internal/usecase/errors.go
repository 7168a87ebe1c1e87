package usecase

import (
	"errors"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
)

// Messages shown to the user
const (
	MsgEmptyText    = "Please enter some text to classify"
	MsgNoFile       = "Please select a file"
	MsgConnectivity = "Failed to connect to the server. Please try again."
)

// Error definitions for session usecase
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrRequestInFlight = errors.New("a classification request is already in flight")
)

// ValidationError is a local precondition failure; no network call was made
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func newValidationError(err error) *ValidationError {
	if errors.Is(err, entity.ErrNoFile) {
		return &ValidationError{Message: MsgNoFile, Err: err}
	}
	return &ValidationError{Message: MsgEmptyText, Err: err}
}
