package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func validEnv() map[string]string {
	return map[string]string{
		"DB_URI":         "root:password@tcp(127.0.0.1:3306)/auth?parseTime=true",
		"COOKIE_SECRET":  "cookie-secret",
		"JWT_SECRET_KEY": "jwt-secret",
		"SALT_ROUND":     "10",
		"PORT":           "3000",
	}
}

func TestLoad_AllSet(t *testing.T) {
	cfg, err := load(envFrom(validEnv()))
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "cookie-secret", cfg.CookieSecret)
	assert.Equal(t, "jwt-secret", cfg.JWTSecret)
	assert.Equal(t, 10, cfg.SaltRound)
	assert.Equal(t, "development", cfg.Env)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Production(t *testing.T) {
	env := validEnv()
	env["ENV"] = "production"

	cfg, err := load(envFrom(env))
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_MissingRequired(t *testing.T) {
	env := validEnv()
	delete(env, "JWT_SECRET_KEY")
	delete(env, "PORT")

	_, err := load(envFrom(env))
	require.Error(t, err)

	var missing *MissingError
	require.True(t, errors.As(err, &missing))
	assert.ElementsMatch(t, []string{"JWT_SECRET_KEY", "PORT"}, missing.Keys)
}

func TestLoad_InvalidSaltRound(t *testing.T) {
	for _, v := range []string{"abc", "3", "32"} {
		t.Run(v, func(t *testing.T) {
			env := validEnv()
			env["SALT_ROUND"] = v

			_, err := load(envFrom(env))
			assert.ErrorIs(t, err, ErrInvalidSaltRound)
		})
	}
}
