// Package handlers implements the REST API endpoints.
package handlers

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hotsdraft/hots-companion/internal/draftdata"
	"github.com/hotsdraft/hots-companion/internal/hots/draft"
)

// ErrSessionNotFound is returned for unknown session IDs.
var ErrSessionNotFound = errors.New("draft session not found")

// Session is one live draft session. All access to State and Bundle
// goes through WithLock.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu     sync.Mutex
	state  *draft.State
	bundle *draftdata.Bundle
}

// WithLock runs fn with exclusive access to the session's state and
// bundle. fn may replace the bundle by returning a non-nil one.
func (s *Session) WithLock(fn func(state *draft.State, bundle *draftdata.Bundle) *draftdata.Bundle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b := fn(s.state, s.bundle); b != nil {
		s.bundle = b
	}
}

// Snapshot returns a deep copy of the session state.
func (s *Session) Snapshot() *draft.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// SessionManager holds the live draft sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]*Session)}
}

// Create registers a new session with a fresh draft state.
func (m *SessionManager) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		state:     draft.NewState(),
	}
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get returns the session with the given ID.
func (m *SessionManager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete removes a session. Returns ErrSessionNotFound for unknown IDs.
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	return nil
}

// List returns all live sessions.
func (m *SessionManager) List() []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out
}
