package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
	"github.com/newsdesk/news-classifier-web/internal/domain/service"
	"github.com/newsdesk/news-classifier-web/internal/infrastructure/metrics"
)

// Session binds an interaction controller to a browser session
type Session struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	Controller *InteractionController
}

// SessionRepository stores live sessions. GetByID returns nil, nil for unknown ids.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id uuid.UUID) (*Session, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

// StateOutput represents the view of a session's interaction state
type StateOutput struct {
	SessionID    uuid.UUID         `json:"session_id"`
	Status       string            `json:"status"`
	InputText    string            `json:"input_text"`
	SelectedFile *FileOutput       `json:"selected_file"`
	Prediction   *PredictionOutput `json:"prediction"`
	IsLoading    bool              `json:"is_loading"`
	Error        *string           `json:"error"`
	WasSaved     bool              `json:"was_saved"`
}

// FileOutput describes the selected file without its content
type FileOutput struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// PredictionOutput is the last classification result with its presentation color
type PredictionOutput struct {
	Category      string `json:"category"`
	Text          string `json:"text"`
	Color         string `json:"color"`
	KnownCategory bool   `json:"known_category"`
}

// SessionUsecase defines the interface for session interaction logic.
// Validation, remote and transport failures of a submit are reported in the
// returned state, not as errors.
type SessionUsecase interface {
	Create(ctx context.Context) (*StateOutput, error)
	Get(ctx context.Context, id uuid.UUID) (*StateOutput, error)
	Delete(ctx context.Context, id uuid.UUID) error
	SetInputText(ctx context.Context, id uuid.UUID, text string) (*StateOutput, error)
	SelectFile(ctx context.Context, id uuid.UUID, file *entity.UploadFile) (*StateOutput, error)
	SubmitText(ctx context.Context, id uuid.UUID, save bool) (*StateOutput, error)
	SubmitFile(ctx context.Context, id uuid.UUID) (*StateOutput, error)
	Reset(ctx context.Context, id uuid.UUID) (*StateOutput, error)
	Watch(ctx context.Context, id uuid.UUID, fn func(*StateOutput)) (stop func(), done <-chan struct{}, err error)
	Count(ctx context.Context) (int64, error)
	Expire(session *Session)
}

type sessionUsecase struct {
	sessionRepo SessionRepository
	classifier  service.Classifier
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

// NewSessionUsecase creates a new session usecase. metrics may be nil.
func NewSessionUsecase(sessionRepo SessionRepository, classifier service.Classifier, m *metrics.Metrics, logger *zap.Logger) SessionUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sessionUsecase{
		sessionRepo: sessionRepo,
		classifier:  classifier,
		metrics:     m,
		logger:      logger,
	}
}

func (u *sessionUsecase) Create(ctx context.Context) (*StateOutput, error) {
	id := uuid.New()
	session := &Session{
		ID:         id,
		CreatedAt:  time.Now().UTC(),
		Controller: NewInteractionController(u.classifier, u.logger.With(zap.String("session_id", id.String()))),
	}

	if err := u.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	u.metrics.SessionOpened()
	u.logger.Info("Session created", zap.String("session_id", id.String()))

	return toStateOutput(id, session.Controller.State()), nil
}

func (u *sessionUsecase) Get(ctx context.Context, id uuid.UUID) (*StateOutput, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStateOutput(id, session.Controller.State()), nil
}

func (u *sessionUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := u.get(ctx, id)
	if err != nil {
		return err
	}
	if err := u.sessionRepo.Delete(ctx, id); err != nil {
		return err
	}
	u.close(session, "deleted")
	return nil
}

func (u *sessionUsecase) SetInputText(ctx context.Context, id uuid.UUID, text string) (*StateOutput, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Controller.SetInputText(text)
	return toStateOutput(id, session.Controller.State()), nil
}

func (u *sessionUsecase) SelectFile(ctx context.Context, id uuid.UUID, file *entity.UploadFile) (*StateOutput, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Controller.SelectFile(file)
	return toStateOutput(id, session.Controller.State()), nil
}

func (u *sessionUsecase) SubmitText(ctx context.Context, id uuid.UUID, save bool) (*StateOutput, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.submitted(session, session.Controller.SubmitText(ctx, save)); err != nil {
		return nil, err
	}
	return toStateOutput(id, session.Controller.State()), nil
}

func (u *sessionUsecase) SubmitFile(ctx context.Context, id uuid.UUID) (*StateOutput, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.submitted(session, session.Controller.SubmitFile(ctx)); err != nil {
		return nil, err
	}
	return toStateOutput(id, session.Controller.State()), nil
}

func (u *sessionUsecase) Reset(ctx context.Context, id uuid.UUID) (*StateOutput, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.Controller.Reset()
	return toStateOutput(id, session.Controller.State()), nil
}

// Watch calls fn with the current state and then on every change until stop
// is called. done is closed when the session ends.
func (u *sessionUsecase) Watch(ctx context.Context, id uuid.UUID, fn func(*StateOutput)) (func(), <-chan struct{}, error) {
	session, err := u.get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stop := session.Controller.Subscribe(func(state entity.InteractionState) {
		fn(toStateOutput(id, state))
	})
	return stop, session.Controller.Done(), nil
}

func (u *sessionUsecase) Count(ctx context.Context) (int64, error) {
	return u.sessionRepo.Count(ctx)
}

// Expire releases a session evicted by the repository
func (u *sessionUsecase) Expire(session *Session) {
	u.close(session, "expired")
}

func (u *sessionUsecase) get(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := u.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// submitted keeps only the errors the caller has to act on; the rest are
// already part of the session state.
func (u *sessionUsecase) submitted(session *Session, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrRequestInFlight) {
		return err
	}
	u.logger.Debug("Submit finished with error",
		zap.String("session_id", session.ID.String()),
		zap.Error(err),
	)
	return nil
}

func (u *sessionUsecase) close(session *Session, reason string) {
	if !session.Controller.Close() {
		return
	}
	u.metrics.SessionClosed()
	u.logger.Info("Session closed",
		zap.String("session_id", session.ID.String()),
		zap.String("reason", reason),
		zap.Duration("age", time.Since(session.CreatedAt)),
	)
}

func toStateOutput(id uuid.UUID, s entity.InteractionState) *StateOutput {
	out := &StateOutput{
		SessionID: id,
		Status:    string(s.Status),
		InputText: s.InputText,
		IsLoading: s.IsLoading,
		Error:     s.ErrorMessage,
		WasSaved:  s.WasSaved,
	}
	if s.SelectedFile != nil {
		out.SelectedFile = &FileOutput{
			Name: s.SelectedFile.Name,
			Size: s.SelectedFile.Size,
		}
	}
	if s.LastResult != nil {
		out.Prediction = &PredictionOutput{
			Category:      s.LastResult.Category,
			Text:          s.LastResult.Text,
			Color:         s.LastResult.Color(),
			KnownCategory: entity.IsKnownCategory(s.LastResult.Category),
		}
	}
	return out
}
