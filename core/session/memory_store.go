package session

import (
	"context"
	"sync"
)

// MemoryStore is an ephemeral Store for tests and throwaway runs.
type MemoryStore struct {
	mu      sync.RWMutex
	sess    Session
	present bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.present {
		return Session{}, ErrNotFound
	}
	return s.sess, nil
}

func (s *MemoryStore) Save(_ context.Context, sess Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = sess
	s.present = true
	return nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sess = Session{}
	s.present = false
	return nil
}
