// Package cookie carries the session token in a signed cookie. The value is
// HMAC-signed, not encrypted: clients can read it but not alter it.
package cookie

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// Name is the session cookie name.
const Name = "auth"

var (
	ErrNoCookie      = errors.New("session cookie not present")
	ErrInvalidCookie = errors.New("session cookie signature is invalid")
)

// Options configures a Manager.
type Options struct {
	Secret string
	Secure bool
}

// Manager sets, reads and clears the signed session cookie.
type Manager struct {
	codec  *securecookie.SecureCookie
	secure bool
}

// NewManager creates a Manager signing with opts.Secret. The signature
// carries no age limit: expiry belongs to the token inside.
func NewManager(opts Options) *Manager {
	codec := securecookie.New([]byte(opts.Secret), nil).MaxAge(0)
	return &Manager{codec: codec, secure: opts.Secure}
}

// Set writes value as the signed session cookie.
func (m *Manager) Set(w http.ResponseWriter, value string) error {
	encoded, err := m.codec.Encode(Name, value)
	if err != nil {
		return fmt.Errorf("signing cookie: %w", err)
	}

	http.SetCookie(w, m.cookie(encoded, 0))
	return nil
}

// Get returns the verified value of the session cookie. It fails with
// ErrNoCookie when absent and ErrInvalidCookie when the signature does not
// verify.
func (m *Manager) Get(r *http.Request) (string, error) {
	c, err := r.Cookie(Name)
	if err != nil || c.Value == "" {
		return "", ErrNoCookie
	}

	var value string
	if err := m.codec.Decode(Name, c.Value, &value); err != nil {
		return "", ErrInvalidCookie
	}
	return value, nil
}

// Clear expires the session cookie on the client.
func (m *Manager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, m.cookie("", -1))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	c := &http.Cookie{
		Name:     Name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		Secure:   m.secure,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	if maxAge < 0 {
		c.Expires = time.Unix(0, 0)
	}
	return c
}
