package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword     = errors.New("password must not be empty")
	ErrInvalidHashCost   = errors.New("invalid bcrypt cost")
	ErrInvalidHashFormat = errors.New("invalid encoded hash format")
)

// Hasher hashes passwords with bcrypt at a fixed work factor.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. cost must be within bcrypt.MinCost and bcrypt.MaxCost.
func NewHasher(cost int) (*Hasher, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, fmt.Errorf("%w: %d", ErrInvalidHashCost, cost)
	}
	return &Hasher{cost: cost}, nil
}

// HashPassword returns a salted bcrypt hash of password.
func (h *Hasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
// A mismatch is not an error; a malformed hash is.
func (h *Hasher) VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	case errors.Is(err, bcrypt.ErrHashTooShort):
		return false, ErrInvalidHashFormat
	default:
		return false, err
	}
}
