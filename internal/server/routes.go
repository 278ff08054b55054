package server

import (
	"github.com/webdevexpress/auth-with-jwt/internal/config"
	"github.com/webdevexpress/auth-with-jwt/internal/cookie"
	"github.com/webdevexpress/auth-with-jwt/internal/crypto"
	"github.com/webdevexpress/auth-with-jwt/internal/handler"
	"github.com/webdevexpress/auth-with-jwt/internal/middleware"
	"github.com/webdevexpress/auth-with-jwt/internal/service"
	"github.com/webdevexpress/auth-with-jwt/internal/view"
)

const signinPath = "/signin"

// NewAuthRoutes wires the credential store, token service and session gate
// from cfg on top of users.
func NewAuthRoutes(cfg config.Config, users service.UserRepository) (*AuthRoutes, error) {
	hasher, err := crypto.NewHasher(cfg.SaltRound)
	if err != nil {
		return nil, err
	}
	views, err := view.New()
	if err != nil {
		return nil, err
	}

	tokens := crypto.NewTokenService(cfg.JWTSecret)
	cookies := cookie.NewManager(cookie.Options{
		Secret: cfg.CookieSecret,
		Secure: cfg.IsProduction(),
	})

	store := service.NewCredentialStore(users, hasher)
	authService := service.NewAuthService(store, tokens, crypto.SessionTTL)

	return &AuthRoutes{
		Auth: handler.NewAuthHandler(authService, cookies, views),
		Home: handler.NewHomeHandler(views),
		Gate: middleware.NewSessionGate(tokens, cookies, signinPath),
	}, nil
}
