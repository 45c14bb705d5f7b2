package auth

import (
	"errors"
	"fmt"

	"github.com/example/task-manager/domain/apperr"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultBcryptCost is used when the configured cost is out of range.
	DefaultBcryptCost = 12
	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

// PasswordHasher stores passwords as salted bcrypt digests.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher. A cost outside bcrypt's
// accepted range falls back to DefaultBcryptCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost returns the bcrypt cost factor in use.
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash returns the digest to store for password. Passwords longer than
// MaxPasswordBytes are a validation error rather than silently truncated.
func (h *PasswordHasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", apperr.Validation("password must be at most %d bytes", MaxPasswordBytes)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify returns nil when password matches the stored digest and
// apperr.ErrInvalidCredentials otherwise. A digest that bcrypt cannot read
// also fails verification, with the reason attached.
func (h *PasswordHasher) Verify(password, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return apperr.ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: stored digest unreadable: %v", apperr.ErrInvalidCredentials, err)
	}
}
