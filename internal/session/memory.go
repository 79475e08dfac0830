// Package session keeps each browser session's widget state in memory.
// Nothing is written to disk; a session is gone once it is swept or the
// process exits.
package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/windoze95/mixlist/internal/app"
	"github.com/windoze95/mixlist/internal/logger"
	"github.com/windoze95/mixlist/internal/notify"
	"go.uber.org/zap"
)

// ErrNotFound is returned when a session id is unknown.
var ErrNotFound = errors.New("session not found")

// Session is one browser's widget. State must only be read or replaced while
// holding Mu.
type Session struct {
	ID       string
	Mu       sync.Mutex
	State    app.State
	Notifier *notify.Emitter

	lastSeen time.Time
}

// Option configures a MemoryStore.
type Option func(*MemoryStore)

// WithEmitterOptions applies opts to every session's notification emitter.
func WithEmitterOptions(opts ...notify.Option) Option {
	return func(s *MemoryStore) {
		s.emitterOpts = append(s.emitterOpts, opts...)
	}
}

// WithCreateHook registers fn to run on every new session before it is
// handed out.
func WithCreateHook(fn func(*Session)) Option {
	return func(s *MemoryStore) {
		s.hooks = append(s.hooks, fn)
	}
}

// MemoryStore is an in-memory session store. Safe for concurrent access.
type MemoryStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	emitterOpts []notify.Option
	hooks       []func(*Session)
	now         func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a new session with a fresh id.
func (s *MemoryStore) Create() *Session {
	sess := &Session{
		ID:       uuid.New().String(),
		State:    app.New(),
		Notifier: notify.NewEmitter(s.emitterOpts...),
	}
	for _, hook := range s.hooks {
		hook(sess)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.lastSeen = s.now()
	s.sessions[sess.ID] = sess
	logger.Get().Debug("session created", zap.String("session_id", sess.ID))
	return sess
}

// Get returns the session for id and marks it as seen.
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	sess.lastSeen = s.now()
	return sess, nil
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
func (s *MemoryStore) GetOrCreate(id string) *Session {
	if id != "" {
		if sess, err := s.Get(id); err == nil {
			return sess
		}
	}
	return s.Create()
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions not seen within idle and returns how many were
// removed.
func (s *MemoryStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for id, sess := range s.sessions {
		if sess.lastSeen.Before(cutoff) {
			sess.Notifier.Stop()
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		logger.Get().Info("swept idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(s.sessions)))
	}
	return removed
}

// RunSweeper calls Sweep every interval until stop is closed.
func (s *MemoryStore) RunSweeper(interval, idle time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.Sweep(idle)
		}
	}
}
