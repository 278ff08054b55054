package handler

import (
	"net/http"

	"github.com/webdevexpress/auth-with-jwt/internal/middleware"
	"github.com/webdevexpress/auth-with-jwt/internal/view"
)

// HomeHandler serves the protected landing page.
type HomeHandler struct {
	views Renderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(views Renderer) *HomeHandler {
	return &HomeHandler{views: views}
}

// HandleHome handles GET / requests behind the session gate.
func (h *HomeHandler) HandleHome(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/signin", http.StatusFound)
		return
	}

	render(h.views, w, http.StatusOK, "home", view.Data{"user": id})
}
