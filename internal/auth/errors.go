package auth

import "errors"

var (
	// ErrInvalidCredentials covers both an unknown username and a password
	// mismatch; callers cannot tell them apart.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrSessionNotFound    = errors.New("session does not exist")
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidAccount     = errors.New("username and password are required")
)
