package cookie

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/gob"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "cookie-secret"

func newTestManager() *Manager {
	return NewManager(Options{Secret: testSecret})
}

// signedAt encodes value the way securecookie does, stamped with at instead
// of the current time.
func signedAt(t *testing.T, secret, value string, at time.Time) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(value))

	payload := fmt.Sprintf("%s|%d|%s", Name, at.Unix(), base64.URLEncoding.EncodeToString(buf.Bytes()))
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))

	signed := payload[len(Name)+1:] + "|" + string(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(signed))
}

func requestWith(c *http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if c != nil {
		r.AddCookie(c)
	}
	return r
}

func setCookie(t *testing.T, m *Manager, value string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Set(rec, value))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestSet_Attributes(t *testing.T) {
	c := setCookie(t, newTestManager(), "token-value")

	assert.Equal(t, Name, c.Name)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.False(t, c.Secure)
	assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	assert.NotEqual(t, "token-value", c.Value, "value must be signed")
}

func TestSet_SecureInProduction(t *testing.T) {
	m := NewManager(Options{Secret: testSecret, Secure: true})
	c := setCookie(t, m, "v")
	assert.True(t, c.Secure)
}

func TestGet_RoundTrip(t *testing.T) {
	m := newTestManager()
	c := setCookie(t, m, "token-value")

	got, err := m.Get(requestWith(c))
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestGet_IgnoresSignatureAge(t *testing.T) {
	old := signedAt(t, testSecret, "token-value", time.Now().Add(-60*24*time.Hour))

	var decoded string
	err := securecookie.New([]byte(testSecret), nil).Decode(Name, old, &decoded)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired timestamp")

	got, err := newTestManager().Get(requestWith(&http.Cookie{Name: Name, Value: old}))
	require.NoError(t, err)
	assert.Equal(t, "token-value", got)
}

func TestGet_Missing(t *testing.T) {
	_, err := newTestManager().Get(requestWith(nil))
	assert.ErrorIs(t, err, ErrNoCookie)
}

func TestGet_Tampered(t *testing.T) {
	m := newTestManager()
	c := setCookie(t, m, "token-value")
	b := []byte(c.Value)
	i := len(b) / 2
	if b[i] == 'A' {
		b[i] = 'B'
	} else {
		b[i] = 'A'
	}
	c.Value = string(b)

	_, err := m.Get(requestWith(c))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestGet_Unsigned(t *testing.T) {
	_, err := newTestManager().Get(requestWith(&http.Cookie{Name: Name, Value: "raw.jwt.value"}))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestGet_WrongSecret(t *testing.T) {
	c := setCookie(t, NewManager(Options{Secret: "secret-a"}), "token-value")

	_, err := NewManager(Options{Secret: "secret-b"}).Get(requestWith(c))
	assert.ErrorIs(t, err, ErrInvalidCookie)
}

func TestClear(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestManager().Clear(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, Name, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}
