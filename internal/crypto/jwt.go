package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer = "auth-with-jwt"

	// SessionTTL is the lifetime of a token issued at signin.
	SessionTTL = time.Hour
)

var (
	ErrBadSignature = errors.New("token signature is invalid")
	ErrExpired      = errors.New("token has expired")
)

// Identity is the subject carried inside a session token.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Claims represents the JWT claims of a session token.
type Claims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

// TokenService issues and verifies HS256 session tokens. It holds no state
// other than the signing secret and the clock.
type TokenService struct {
	secret []byte
	now    func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces the wall clock used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) {
		s.now = now
	}
}

// NewTokenService creates a TokenService signing with secret.
func NewTokenService(secret string, opts ...TokenOption) *TokenService {
	s := &TokenService{
		secret: []byte(secret),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Issue creates a signed token for id that expires ttl after now.
func (s *TokenService) Issue(id Identity, ttl time.Duration) (string, error) {
	now := s.now()
	exp := now.Add(ttl)
	// exp is encoded in whole seconds; round up so a positive ttl is never cut short.
	if ttl > 0 {
		if whole := exp.Truncate(time.Second); !whole.Equal(exp) {
			exp = whole.Add(time.Second)
		}
	}

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Name:  id.Name,
		Email: id.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and then its expiry, returning the
// embedded identity when both pass. Any failure other than expiry is
// reported as ErrBadSignature.
func (s *TokenService) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, ErrBadSignature
	}
	if !token.Valid {
		return Identity{}, ErrBadSignature
	}

	return Identity{Name: claims.Name, Email: claims.Email}, nil
}
