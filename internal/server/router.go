// Package server assembles the HTTP routes.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/webdevexpress/auth-with-jwt/internal/handler"
	"github.com/webdevexpress/auth-with-jwt/internal/middleware"
)

// Credential endpoints allow 5 requests per second per IP with bursts of 10.
const (
	credentialRPS   = 5
	credentialBurst = 10
)

// AuthRoutes are the routes that need the credential store. They are left
// nil when the database is unavailable.
type AuthRoutes struct {
	Auth *handler.AuthHandler
	Home *handler.HomeHandler
	Gate *middleware.SessionGate
}

// NewRouter builds the application router.
func NewRouter(auth *AuthRoutes) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if auth == nil {
		return r
	}

	r.Get("/logout", auth.Auth.HandleLogout)

	r.Group(func(r chi.Router) {
		r.Use(auth.Gate.RedirectIfAuthenticated("/"))
		r.Get("/signup", auth.Auth.ShowSignup)
		r.Get("/signin", auth.Auth.ShowSignin)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(credentialRPS, credentialBurst))
		r.Post("/signup", auth.Auth.HandleSignup)
		r.Post("/signin", auth.Auth.HandleSignin)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.Gate.Require)
		r.Get("/", auth.Home.HandleHome)
	})

	return r
}
