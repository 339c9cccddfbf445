package security

import (
	"errors"
	"fmt"

	"github.com/Emman-24/backendFlorist/pkg/config"
	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor accepted for stored credentials.
const MinBcryptCost = 12

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

var (
	// ErrInvalidHash signals a malformed bcrypt hash string.
	ErrInvalidHash = errors.New("invalid bcrypt hash")
	// ErrPasswordTooLong is returned by Hash for inputs over MaxPasswordBytes.
	ErrPasswordTooLong = bcrypt.ErrPasswordTooLong
)

// PasswordHasher hashes and verifies credentials with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher, raising the configured cost to MinBcryptCost when lower.
func NewPasswordHasher(cfg config.PasswordConfig) *PasswordHasher {
	cost := cfg.BcryptCost
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost returns the effective bcrypt work factor.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash for the provided password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify returns true when the password matches the encoded hash.
func (h *PasswordHasher) Verify(password, encoded string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case errors.Is(err, bcrypt.ErrHashTooShort):
		return false, ErrInvalidHash
	default:
		var versionErr bcrypt.HashVersionTooNewError
		var prefixErr bcrypt.InvalidHashPrefixError
		if errors.As(err, &versionErr) || errors.As(err, &prefixErr) {
			return false, ErrInvalidHash
		}
		return false, err
	}
}
