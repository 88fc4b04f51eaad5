package auth

import (
	"crypto/sha512"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	DefaultIterations = 10000
	keyLength         = sha512.Size // 64 bytes, 128 hex characters
)

// Hasher turns a password into the value kept in account storage.
// Equal inputs must hash equally within one deployment.
type Hasher interface {
	Hash(password string) string
}

// PBKDF2Hasher derives a hex encoded PBKDF2-HMAC-SHA512 key using the
// deployment secret as salt.
type PBKDF2Hasher struct {
	secret     []byte
	iterations int
}

func NewPBKDF2Hasher(secret string, iterations int) *PBKDF2Hasher {
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &PBKDF2Hasher{secret: []byte(secret), iterations: iterations}
}

func (h *PBKDF2Hasher) Hash(password string) string {
	key := pbkdf2.Key([]byte(password), h.secret, h.iterations, keyLength, sha512.New)
	return hex.EncodeToString(key)
}
