package usecase

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/newsdesk/news-classifier-web/internal/domain/entity"
	"github.com/newsdesk/news-classifier-web/internal/domain/service"
)

// InteractionController owns the state of one user session and runs at most
// one classification request at a time.
//
// Every submit is tagged with a sequence number and the reset epoch current at
// dispatch. Reset advances the epoch, so a response that arrives after a reset
// only clears the loading flag and is otherwise discarded.
type InteractionController struct {
	classifier service.Classifier
	logger     *zap.Logger

	mu          sync.Mutex
	state       entity.InteractionState
	seq         uint64
	inflight    uint64
	epoch       uint64
	subscribers map[uint64]func(entity.InteractionState)
	nextSub     uint64

	done      chan struct{}
	closeOnce sync.Once
}

type ticket struct {
	seq   uint64
	epoch uint64
}

type predictFunc func(ctx context.Context) (*entity.ClassificationResult, error)

// NewInteractionController creates a controller in the Idle state
func NewInteractionController(classifier service.Classifier, logger *zap.Logger) *InteractionController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InteractionController{
		classifier:  classifier,
		logger:      logger,
		state:       entity.NewInteractionState(),
		subscribers: make(map[uint64]func(entity.InteractionState)),
		done:        make(chan struct{}),
	}
}

// State returns the current snapshot
func (c *InteractionController) State() entity.InteractionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe calls fn with the current snapshot and then with every new one.
// fn runs while the controller is locked: it must not block or call back into
// the controller.
func (c *InteractionController) Subscribe(fn func(entity.InteractionState)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	fn(c.state)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subscribers, id)
		c.mu.Unlock()
	}
}

// Done is closed once the controller is closed
func (c *InteractionController) Done() <-chan struct{} {
	return c.done
}

// Close drops all subscribers and closes Done. It reports whether this call closed the controller.
func (c *InteractionController) Close() bool {
	closed := false
	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.subscribers = make(map[uint64]func(entity.InteractionState))
		c.mu.Unlock()
		close(c.done)
		closed = true
	})
	return closed
}

// SetInputText replaces the input text
func (c *InteractionController) SetInputText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(Action{Type: ActionSetInputText, Text: text})
}

// SelectFile replaces the selected file; nil clears it
func (c *InteractionController) SelectFile(file *entity.UploadFile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dispatchLocked(Action{Type: ActionSelectFile, File: file})
}

// Reset clears input, file, result, error and saved flag. A request in
// flight keeps running but its response will not be applied.
func (c *InteractionController) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.dispatchLocked(Action{Type: ActionReset})
}

// SubmitText classifies the input text through predict, or predict-and-log when save is set.
// Cancelling ctx does not abandon the request. The returned error is already
// reflected in the state's error message.
func (c *InteractionController) SubmitText(ctx context.Context, save bool) error {
	c.mu.Lock()
	req := entity.NewTextRequest(c.state.InputText)
	t, err := c.beginLocked(req)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	predict := c.classifier.Predict
	if save {
		predict = c.classifier.PredictAndLog
	}

	return c.run(ctx, t, req.Kind, save, func(ctx context.Context) (*entity.ClassificationResult, error) {
		return predict(ctx, req.Text)
	})
}

// SubmitFile classifies the selected file. On success the selection is cleared.
func (c *InteractionController) SubmitFile(ctx context.Context) error {
	c.mu.Lock()
	req := entity.NewFileRequest(c.state.SelectedFile)
	t, err := c.beginLocked(req)
	c.mu.Unlock()
	if err != nil {
		return err
	}

	return c.run(ctx, t, req.Kind, false, func(ctx context.Context) (*entity.ClassificationResult, error) {
		return c.classifier.PredictFile(ctx, req.File)
	})
}

func (c *InteractionController) beginLocked(req *entity.ClassificationRequest) (ticket, error) {
	if c.state.IsLoading {
		return ticket{}, ErrRequestInFlight
	}

	if err := req.Validate(); err != nil {
		verr := newValidationError(err)
		c.dispatchLocked(Action{Type: ActionValidationFailed, Message: verr.Message})
		return ticket{}, verr
	}

	c.seq++
	c.inflight = c.seq
	c.dispatchLocked(Action{Type: ActionSubmitStarted, Kind: req.Kind})

	return ticket{seq: c.seq, epoch: c.epoch}, nil
}

func (c *InteractionController) run(ctx context.Context, t ticket, kind entity.RequestKind, save bool, predict predictFunc) (err error) {
	var result *entity.ClassificationResult
	// complete runs on every exit path, panics included
	defer func() {
		c.complete(t, kind, save, result, err)
	}()

	// A request in flight runs to completion even if the caller goes away;
	// only the client timeout bounds it.
	result, err = predict(context.WithoutCancel(ctx))
	return err
}

func (c *InteractionController) complete(t ticket, kind entity.RequestKind, save bool, result *entity.ClassificationResult, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	switch {
	case t.epoch != c.epoch:
		c.logger.Debug("Discarding response after reset",
			zap.Uint64("request_seq", t.seq),
			zap.String("kind", string(kind)),
		)
	case err != nil || result == nil:
		next = Reduce(next, Action{Type: ActionSubmitFailed, Message: DisplayMessage(err)})
	default:
		next = Reduce(next, Action{Type: ActionSubmitSucceeded, Result: result, Kind: kind, Save: save})
	}

	if t.seq == c.inflight {
		c.inflight = 0
		next = Reduce(next, Action{Type: ActionSubmitSettled})
	}

	c.publishLocked(next)
}

func (c *InteractionController) dispatchLocked(a Action) {
	c.publishLocked(Reduce(c.state, a))
}

func (c *InteractionController) publishLocked(next entity.InteractionState) {
	c.state = next
	for _, fn := range c.subscribers {
		fn(next)
	}
}

// DisplayMessage converts any submit error into the text shown to the user
func DisplayMessage(err error) string {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}

	var remoteErr *service.RemoteError
	if errors.As(err, &remoteErr) && remoteErr.Message != "" {
		return remoteErr.Message
	}

	return MsgConnectivity
}
