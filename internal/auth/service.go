package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"vcdesk/internal/session"

	"go.uber.org/zap"
)

// Account is a stored user. PasswordHash never leaves the service.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns the account without its password hash.
func (a Account) Public() Account {
	return Account{Username: a.Username, CreatedAt: a.CreatedAt}
}

// AccountStore persists accounts keyed by username. FindByUsername returns
// ErrAccountNotFound for unknown users and CreateAccount returns
// ErrDuplicateAccount for taken usernames.
type AccountStore interface {
	CreateAccount(ctx context.Context, username, passwordHash string) (*Account, error)
	FindByUsername(ctx context.Context, username string) (*Account, error)
}

// SessionStore issues and resolves opaque session tokens.
type SessionStore interface {
	Create(username string) (session.Session, error)
	Get(token string) (session.Session, bool)
	Exists(token string) bool
	Delete(token string)
}

type Service struct {
	accounts AccountStore
	hasher   Hasher
	sessions SessionStore
	logger   *zap.Logger
}

func NewService(accounts AccountStore, hasher Hasher, sessions SessionStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		accounts: accounts,
		hasher:   hasher,
		sessions: sessions,
		logger:   logger,
	}
}

// CreateAccount stores a new account holding the hash of password.
func (s *Service) CreateAccount(ctx context.Context, username, password string) (*Account, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidAccount
	}

	account, err := s.accounts.CreateAccount(ctx, username, s.hasher.Hash(password))
	if err != nil {
		return nil, fmt.Errorf("create account %q: %w", username, err)
	}

	s.logger.Info("account created", zap.String("username", username))
	public := account.Public()
	return &public, nil
}

// VerifyCredentials reports whether password matches the stored hash of
// username. Unknown usernames report false without an error; only storage
// failures are returned as errors.
func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (bool, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find account %q: %w", username, err)
	}

	return s.hasher.Hash(password) == account.PasswordHash, nil
}

// Login verifies the credentials and issues a session.
func (s *Service) Login(ctx context.Context, username, password string) (session.Session, error) {
	ok, err := s.VerifyCredentials(ctx, username, password)
	if err != nil {
		return session.Session{}, err
	}
	if !ok {
		s.logger.Info("login rejected", zap.String("username", username))
		return session.Session{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(username)
	if err != nil {
		return session.Session{}, fmt.Errorf("issue session: %w", err)
	}
	return sess, nil
}

// SessionExists reports whether token names a live session.
func (s *Service) SessionExists(_ context.Context, token string) bool {
	if token == "" {
		return false
	}
	return s.sessions.Exists(token)
}

// Session resolves token to its session.
func (s *Service) Session(_ context.Context, token string) (session.Session, error) {
	if token == "" {
		return session.Session{}, ErrSessionNotFound
	}
	sess, ok := s.sessions.Get(token)
	if !ok {
		return session.Session{}, ErrSessionNotFound
	}
	return sess, nil
}

func (s *Service) Logout(_ context.Context, token string) {
	if token != "" {
		s.sessions.Delete(token)
	}
}
