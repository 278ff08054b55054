package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidSaltRound = fmt.Errorf("SALT_ROUND must be an integer between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)

// Config holds everything the server needs at startup. It is built once in
// main and handed to constructors.
type Config struct {
	Port         string
	Env          string
	DatabaseDSN  string
	CookieSecret string
	JWTSecret    string
	SaltRound    int
}

// IsProduction reports whether the server runs with production settings.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// MissingError lists required environment variables that were not set.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Keys, ", ")
}

// Load reads the configuration from the environment. DB_URI, COOKIE_SECRET,
// JWT_SECRET_KEY, SALT_ROUND and PORT are required.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	var missing []string
	required := func(key string) string {
		v := getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := Config{
		DatabaseDSN:  required("DB_URI"),
		CookieSecret: required("COOKIE_SECRET"),
		JWTSecret:    required("JWT_SECRET_KEY"),
		Port:         required("PORT"),
		Env:          getenv("ENV"),
	}
	saltRound := required("SALT_ROUND")

	if cfg.Env == "" {
		cfg.Env = "development"
	}

	if len(missing) > 0 {
		return Config{}, &MissingError{Keys: missing}
	}

	cost, err := strconv.Atoi(saltRound)
	if err != nil {
		return Config{}, errors.Join(ErrInvalidSaltRound, err)
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return Config{}, ErrInvalidSaltRound
	}
	cfg.SaltRound = cost

	return cfg, nil
}
