package store

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-task-keeper/models"
)

// memorySessionStore keeps sessions in process memory. Used when no Redis
// address is configured; sessions do not survive a restart.
type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
	now      func() time.Time
}

// NewMemorySessionStore returns an in-process [SessionStore].
func NewMemorySessionStore() SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]models.Session),
		now:      time.Now,
	}
}

func (s *memorySessionStore) SaveSession(_ context.Context, session models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()
	s.sessions[session.ID] = session
	return nil
}

func (s *memorySessionStore) GetSession(_ context.Context, sessionID string) (models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok || session.IsExpired(s.now()) {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (s *memorySessionStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}

// evictExpired must be called with mu held.
func (s *memorySessionStore) evictExpired() {
	now := s.now()
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
		}
	}
}
