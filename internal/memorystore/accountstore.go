package memorystore

import (
	"context"
	"sync"
	"time"

	"vcdesk/internal/auth"
)

// AccountStore keeps accounts in memory keyed by username.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]auth.Account
}

func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]auth.Account),
	}
}

func (s *AccountStore) CreateAccount(_ context.Context, username, passwordHash string) (*auth.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[username]; ok {
		return nil, auth.ErrDuplicateAccount
	}
	account := auth.Account{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	s.accounts[username] = account
	return &account, nil
}

func (s *AccountStore) FindByUsername(_ context.Context, username string) (*auth.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[username]
	if !ok {
		return nil, auth.ErrAccountNotFound
	}
	return &account, nil
}
