package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/webdevexpress/auth-with-jwt/internal/cookie"
	"github.com/webdevexpress/auth-with-jwt/internal/crypto"
)

type contextKey string

const identityKey contextKey = "identity"

// TokenVerifier validates session tokens.
type TokenVerifier interface {
	Verify(token string) (crypto.Identity, error)
}

// SessionGate admits requests that carry a valid signed session cookie and
// redirects everything else to the signin page.
type SessionGate struct {
	tokens     TokenVerifier
	cookies    *cookie.Manager
	signinPath string
}

// NewSessionGate creates a SessionGate redirecting rejected requests to signinPath.
func NewSessionGate(tokens TokenVerifier, cookies *cookie.Manager, signinPath string) *SessionGate {
	return &SessionGate{
		tokens:     tokens,
		cookies:    cookies,
		signinPath: signinPath,
	}
}

// Authenticate resolves the identity carried by the request. It returns
// cookie.ErrNoCookie when no session cookie is present, crypto.ErrBadSignature
// when the cookie or the token fails verification and crypto.ErrExpired when
// the token is past its expiry.
func (g *SessionGate) Authenticate(r *http.Request) (crypto.Identity, error) {
	token, err := g.cookies.Get(r)
	if err != nil {
		if errors.Is(err, cookie.ErrInvalidCookie) {
			return crypto.Identity{}, crypto.ErrBadSignature
		}
		return crypto.Identity{}, err
	}

	return g.tokens.Verify(token)
}

// Require either forwards the request with the identity in its context or
// ends it with a redirect to the signin page, never both.
func (g *SessionGate) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := g.Authenticate(r)
		if err != nil {
			if !errors.Is(err, cookie.ErrNoCookie) {
				slog.Debug("session rejected", "path", r.URL.Path, "error", err)
				g.cookies.Clear(w)
			}
			http.Redirect(w, r, g.signinPath, http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// RedirectIfAuthenticated sends requests that already hold a valid session
// to target. An invalid session cookie is cleared and the request continues.
func (g *SessionGate) RedirectIfAuthenticated(target string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := g.Authenticate(r)
			switch {
			case err == nil:
				http.Redirect(w, r, target, http.StatusFound)
				return
			case !errors.Is(err, cookie.ErrNoCookie):
				g.cookies.Clear(w)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id crypto.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated identity from the request context.
func IdentityFromContext(ctx context.Context) (crypto.Identity, bool) {
	id, ok := ctx.Value(identityKey).(crypto.Identity)
	return id, ok
}
