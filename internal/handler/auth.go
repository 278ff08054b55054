package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/webdevexpress/auth-with-jwt/internal/cookie"
	"github.com/webdevexpress/auth-with-jwt/internal/model"
	"github.com/webdevexpress/auth-with-jwt/internal/service"
	"github.com/webdevexpress/auth-with-jwt/internal/view"
)

const (
	viewSignup = "signup"
	viewSignin = "signin"

	signinFailedMessage = "Invalid email or password"
)

// AuthHandler handles the signup, signin and logout pages.
type AuthHandler struct {
	service *service.AuthService
	cookies *cookie.Manager
	views   Renderer
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService, cookies *cookie.Manager, views Renderer) *AuthHandler {
	return &AuthHandler{service: svc, cookies: cookies, views: views}
}

// ShowSignup handles GET /signup requests.
func (h *AuthHandler) ShowSignup(w http.ResponseWriter, r *http.Request) {
	render(h.views, w, http.StatusOK, viewSignup, view.Data{})
}

// HandleSignup handles POST /signup requests.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := model.SignupRequest{
		Name:     r.PostForm.Get("name"),
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	if err := req.Validate(); err != nil {
		render(h.views, w, http.StatusBadRequest, viewSignup, view.Data{
			"record": req,
			"errors": fieldErrors(err),
		})
		return
	}

	if _, err := h.service.Signup(r.Context(), req); err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			slog.Info("signup rejected", "error", err)
		} else {
			slog.Error("signup failed", "error", err)
		}
		writeServerError(w)
		return
	}

	http.Redirect(w, r, "/signin", http.StatusFound)
}

// ShowSignin handles GET /signin requests.
func (h *AuthHandler) ShowSignin(w http.ResponseWriter, r *http.Request) {
	render(h.views, w, http.StatusOK, viewSignin, view.Data{})
}

// HandleSignin handles POST /signin requests. Unknown users and wrong
// passwords get the same not-found page.
func (h *AuthHandler) HandleSignin(w http.ResponseWriter, r *http.Request) {
	if !parseForm(w, r) {
		return
	}

	req := model.SigninRequest{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	if err := req.Validate(); err != nil {
		render(h.views, w, http.StatusBadRequest, viewSignin, view.Data{
			"record": req,
			"errors": fieldErrors(err),
		})
		return
	}

	token, _, err := h.service.Signin(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrNoSuchUser) || errors.Is(err, service.ErrBadCredential) {
			slog.Info("signin rejected", "error", err)
			render(h.views, w, http.StatusNotFound, viewSignin, view.Data{
				"record":  req,
				"message": signinFailedMessage,
			})
			return
		}
		slog.Error("signin failed", "error", err)
		writeServerError(w)
		return
	}

	if err := h.cookies.Set(w, token); err != nil {
		slog.Error("setting session cookie", "error", err)
		writeServerError(w)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

// HandleLogout handles GET /logout requests. The token itself stays valid
// until it expires; only the client copy is dropped.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	http.Redirect(w, r, "/signin", http.StatusFound)
}
