package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/ReneKroon/ttlcache"
	"github.com/google/uuid"

	"github.com/newsdesk/news-classifier-web/internal/usecase"
)

// ErrClosed is returned by Create once the repository has been closed
var ErrClosed = errors.New("session repository closed")

// SessionRepository keeps live sessions in a TTL cache. Every lookup extends
// the session's lifetime; idle sessions are evicted and handed to onExpire.
type SessionRepository struct {
	cache *ttlcache.Cache

	mu     sync.RWMutex
	closed bool
}

// NewSessionRepository creates a repository whose entries expire after ttl of inactivity.
// onExpire may be nil.
func NewSessionRepository(ttl time.Duration, onExpire func(*usecase.Session)) *SessionRepository {
	cache := ttlcache.NewCache()
	cache.SetTTL(ttl)
	if onExpire != nil {
		cache.SetExpirationCallback(func(_ string, value interface{}) {
			if session, ok := value.(*usecase.Session); ok {
				onExpire(session)
			}
		})
	}
	return &SessionRepository{cache: cache}
}

func (r *SessionRepository) Create(ctx context.Context, session *usecase.Session) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return ErrClosed
	}
	r.cache.Set(session.ID.String(), session)
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*usecase.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, nil
	}
	value, ok := r.cache.Get(id.String())
	if !ok {
		return nil, nil
	}
	return value.(*usecase.Session), nil
}

func (r *SessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil
	}
	r.cache.Remove(id.String())
	return nil
}

func (r *SessionRepository) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return 0, nil
	}
	return int64(r.cache.Count()), nil
}

// Close stops the expiry loop. It is safe to call more than once.
func (r *SessionRepository) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.cache.Close()
}
