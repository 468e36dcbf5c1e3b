package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/courtside/internal/domain/session"
)

// SessionStore holds the live session behind a single lock. Every
// request handler and the rest ticker go through it.
type SessionStore struct {
	mu    sync.RWMutex
	state *session.State
}

func NewSessionStore(state *session.State) *SessionStore {
	if state == nil {
		state = session.NewState()
	}
	return &SessionStore{state: state}
}

func (s *SessionStore) View(ctx context.Context, fn func(*session.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return fn(s.state)
}

func (s *SessionStore) Update(ctx context.Context, fn func(*session.State) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.state)
}
