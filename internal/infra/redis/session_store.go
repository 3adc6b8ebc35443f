package redis

import (
	"context"
	"sync"
	"time"

	"docquiz-service/internal/session"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware session store.
// Notes:
//   - Controllers stay in a local in-memory map; quiz sessions are
//     process-scoped by design and never persisted durably.
//   - Redis marks session liveness so an operator (or a sibling instance)
//     can see which session IDs are active and route clients accordingly.
type SessionStore struct {
	client     *redis.Client
	ttl        time.Duration
	newSession func(id string) *session.Controller

	mu       sync.RWMutex
	sessions map[string]*session.Controller
}

func NewSessionStore(client *redis.Client, ttl time.Duration, newSession func(id string) *session.Controller) *SessionStore {
	return &SessionStore{
		client:     client,
		ttl:        ttl,
		newSession: newSession,
		sessions:   make(map[string]*session.Controller),
	}
}

func (s *SessionStore) GetOrCreate(id string) *session.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ctrl, ok := s.sessions[id]; ok {
		// refresh the liveness marker on resume
		_ = s.client.Expire(context.Background(), s.key(id), s.ttl).Err()
		return ctrl
	}
	ctrl := s.newSession(id)
	s.sessions[id] = ctrl
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(id), "1", s.ttl).Err()
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
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "quiz:session:" + id
}
