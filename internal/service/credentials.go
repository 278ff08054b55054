package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/webdevexpress/auth-with-jwt/internal/model"
	"github.com/webdevexpress/auth-with-jwt/internal/repository"
)

// UserRepository is the persistence contract of the credential store.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasswordHasher hashes and compares passwords.
type PasswordHasher interface {
	HashPassword(password string) (string, error)
	VerifyPassword(password, hash string) (bool, error)
}

// CredentialStore owns user records. Plaintext passwords never reach the
// repository.
type CredentialStore struct {
	repo   UserRepository
	hasher PasswordHasher
}

// NewCredentialStore creates a new CredentialStore.
func NewCredentialStore(repo UserRepository, hasher PasswordHasher) *CredentialStore {
	return &CredentialStore{repo: repo, hasher: hasher}
}

// FindByEmail returns the user stored under email, or repository.ErrUserNotFound.
func (s *CredentialStore) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// Create hashes password and persists a new user. It returns ErrEmailTaken
// when email is already registered.
func (s *CredentialStore) Create(ctx context.Context, name, email, password string) (*model.User, error) {
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}

// Authenticate checks password against the stored hash for email.
func (s *CredentialStore) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrNoSuchUser
		}
		return nil, err
	}

	match, err := s.hasher.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return nil, ErrBadCredential
	}

	return user, nil
}
