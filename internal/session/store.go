package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session binds an opaque token to a username until ExpiresAt.
type Session struct {
	Token     string
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// MemoryStore keeps sessions in process memory. Expired sessions are
// invisible to Get and Exists and are dropped by Sweep.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(username string) (Session, error) {
	token, err := uuid.NewRandom()
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	sess := Session{
		Token:     token.String(),
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *MemoryStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok || sess.Expired(s.now()) {
		return Session{}, false
	}
	return sess, true
}

func (s *MemoryStore) Exists(token string) bool {
	_, ok := s.Get(token)
	return ok
}

func (s *MemoryStore) Delete(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Sweep removes sessions expired at now and returns how many were removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Count returns the number of stored sessions, expired or not.
func (s *MemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
