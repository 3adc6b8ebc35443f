package memory

import (
	"sync"

	"docquiz-service/internal/session"
)

// SessionStore is an in-memory map of session controllers keyed by session
// ID, so a client can resume its quiz over a new connection.
type SessionStore struct {
	newSession func(id string) *session.Controller

	mu       sync.RWMutex
	sessions map[string]*session.Controller
}

func NewSessionStore(newSession func(id string) *session.Controller) *SessionStore {
	return &SessionStore{
		newSession: newSession,
		sessions:   make(map[string]*session.Controller),
	}
}

func (s *SessionStore) GetOrCreate(id string) *session.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctrl, ok := s.sessions[id]; ok {
		return ctrl
	}
	ctrl := s.newSession(id)
	s.sessions[id] = ctrl
	return ctrl
}

func (s *SessionStore) Get(id string) (*session.Controller, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ctrl, ok := s.sessions[id]
	return ctrl, ok
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}
