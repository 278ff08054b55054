package service

import (
	"context"
	"errors"
	"time"

	"github.com/webdevexpress/auth-with-jwt/internal/crypto"
	"github.com/webdevexpress/auth-with-jwt/internal/model"
)

var (
	ErrNoSuchUser    = errors.New("no user with this email")
	ErrBadCredential = errors.New("password does not match")
	ErrEmailTaken    = errors.New("email already taken")
)

// TokenIssuer issues session tokens.
type TokenIssuer interface {
	Issue(id crypto.Identity, ttl time.Duration) (string, error)
}

// AuthService handles the signup and signin flows.
type AuthService struct {
	store  *CredentialStore
	tokens TokenIssuer
	ttl    time.Duration
}

// NewAuthService creates a new AuthService issuing tokens valid for ttl.
func NewAuthService(store *CredentialStore, tokens TokenIssuer, ttl time.Duration) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
	}
}

// Signup creates a new account. The request is expected to be validated.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	return s.store.Create(ctx, req.Name, req.Email, req.Password)
}

// Signin verifies the credentials and returns a session token along with
// the identity it carries. Unknown email and wrong password fail with
// ErrNoSuchUser and ErrBadCredential respectively.
func (s *AuthService) Signin(ctx context.Context, req model.SigninRequest) (string, crypto.Identity, error) {
	user, err := s.store.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return "", crypto.Identity{}, err
	}

	id := crypto.Identity{Name: user.Name, Email: user.Email}
	token, err := s.tokens.Issue(id, s.ttl)
	if err != nil {
		return "", crypto.Identity{}, err
	}

	return token, id, nil
}
