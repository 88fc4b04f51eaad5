package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vcdesk/internal/auth"
	"vcdesk/internal/memorystore"
	"vcdesk/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	username          = "test-user"
	nonExistUsername  = "non-exist-username"
	correctPassword   = "correct-password"
	incorrectPassword = "incorrect-password"
)

// stubAccounts returns a fixed account for one username.
type stubAccounts struct {
	account *auth.Account
	err     error
}

func (s *stubAccounts) CreateAccount(_ context.Context, username, hash string) (*auth.Account, error) {
	if s.account != nil && s.account.Username == username {
		return nil, auth.ErrDuplicateAccount
	}
	return &auth.Account{Username: username, PasswordHash: hash}, nil
}

func (s *stubAccounts) FindByUsername(_ context.Context, username string) (*auth.Account, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.account == nil || s.account.Username != username {
		return nil, auth.ErrAccountNotFound
	}
	return s.account, nil
}

func newService(t *testing.T) (*auth.Service, *stubAccounts) {
	t.Helper()
	hasher := auth.NewPBKDF2Hasher("test-secret", 1000)
	accounts := &stubAccounts{account: &auth.Account{
		Username:     username,
		PasswordHash: hasher.Hash(correctPassword),
	}}
	return auth.NewService(accounts, hasher, session.NewMemoryStore(time.Hour), nil), accounts
}

func TestVerifyCredentials(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	ok, err := svc.VerifyCredentials(ctx, username, correctPassword)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.VerifyCredentials(ctx, username, incorrectPassword)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyCredentials(ctx, nonExistUsername, correctPassword)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyCredentialsStorageFailure(t *testing.T) {
	svc, accounts := newService(t)
	accounts.err = errors.New("connection refused")

	ok, err := svc.VerifyCredentials(context.Background(), username, correctPassword)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestCreateAccount(t *testing.T) {
	ctx := context.Background()
	hasher := auth.NewPBKDF2Hasher("test-secret", 1000)
	accounts := memorystore.NewAccountStore()
	svc := auth.NewService(accounts, hasher, session.NewMemoryStore(time.Hour), nil)

	t.Run("stores the hash and returns the public projection", func(t *testing.T) {
		account, err := svc.CreateAccount(ctx, username, correctPassword)
		require.NoError(t, err)
		assert.Equal(t, username, account.Username)
		assert.Empty(t, account.PasswordHash)

		stored, err := accounts.FindByUsername(ctx, username)
		require.NoError(t, err)
		assert.Equal(t, hasher.Hash(correctPassword), stored.PasswordHash)
		assert.NotEqual(t, correctPassword, stored.PasswordHash)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, username, "another-password")
		assert.ErrorIs(t, err, auth.ErrDuplicateAccount)
	})

	t.Run("empty fields", func(t *testing.T) {
		_, err := svc.CreateAccount(ctx, "", correctPassword)
		assert.ErrorIs(t, err, auth.ErrInvalidAccount)
		_, err = svc.CreateAccount(ctx, "someone", "")
		assert.ErrorIs(t, err, auth.ErrInvalidAccount)
	})

	t.Run("created account can log in", func(t *testing.T) {
		ok, err := svc.VerifyCredentials(ctx, username, correctPassword)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestLoginAndSession(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, username, incorrectPassword)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = svc.Login(ctx, nonExistUsername, correctPassword)
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	sess, err := svc.Login(ctx, username, correctPassword)
	require.NoError(t, err)
	assert.True(t, svc.SessionExists(ctx, sess.Token))

	got, err := svc.Session(ctx, sess.Token)
	require.NoError(t, err)
	assert.Equal(t, username, got.Username)

	svc.Logout(ctx, sess.Token)
	assert.False(t, svc.SessionExists(ctx, sess.Token))
	_, err = svc.Session(ctx, sess.Token)
	assert.ErrorIs(t, err, auth.ErrSessionNotFound)

	assert.False(t, svc.SessionExists(ctx, ""))
}
