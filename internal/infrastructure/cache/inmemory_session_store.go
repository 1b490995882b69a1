package cache

import (
	"context"
	"sync"
	"time"

	"github.com/priyankaBegwani/IC-ORDERS-FE/internal/domain/identity"
)

// InMemorySessionStore keeps sessions in a map. Sessions do not survive a
// restart and are not shared between instances.
type InMemorySessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]identity.Session
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemorySessionStore creates the store and starts a janitor that
// removes expired sessions every cleanupInterval.
func NewInMemorySessionStore(cleanupInterval time.Duration) *InMemorySessionStore {
	s := &InMemorySessionStore{
		sessions: make(map[string]identity.Session),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 5 * time.Minute
	}

	s.wg.Add(1)
	go s.cleanupLoop(cleanupInterval)
	return s
}

// Save stores a copy of the session
func (s *InMemorySessionStore) Save(ctx context.Context, session *identity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = *session
	return nil
}

// Get returns the session or identity.ErrSessionNotFound when it is missing or expired
func (s *InMemorySessionStore) Get(ctx context.Context, id string) (*identity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok || session.IsExpired(s.now()) {
		return nil, identity.ErrSessionNotFound
	}
	return &session, nil
}

// Delete removes a session
func (s *InMemorySessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close stops the janitor. Safe to call multiple times.
func (s *InMemorySessionStore) Close() error {
	s.closeOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
	return nil
}

// Size returns the number of stored sessions, expired ones included
func (s *InMemorySessionStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *InMemorySessionStore) cleanupLoop(interval time.Duration) {
	defer s.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanup()
		}
	}
}

func (s *InMemorySessionStore) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, session := range s.sessions {
		if session.IsExpired(now) {
			delete(s.sessions, id)
		}
	}
}

var _ identity.SessionStore = (*InMemorySessionStore)(nil)
