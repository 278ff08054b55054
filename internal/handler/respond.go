package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/webdevexpress/auth-with-jwt/internal/view"
)

const (
	maxFormBytes   = 1 << 20 // 1MB
	genericMessage = "There was an error on our side!"
)

// Renderer renders a named page.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data view.Data) error
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func messageResponse(msg string) map[string]string {
	return map[string]string{"message": msg}
}

func writeServerError(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError, messageResponse(genericMessage))
}

// render writes the page, falling back to the generic error when the
// template fails before anything was sent.
func render(views Renderer, w http.ResponseWriter, status int, name string, data view.Data) {
	if err := views.Render(w, status, name, data); err != nil {
		slog.Error("rendering view", "view", name, "error", err)
		if !errors.Is(err, view.ErrWrite) {
			writeServerError(w)
		}
	}
}

// parseForm bounds and parses a urlencoded form body. It reports false after
// writing an error response.
func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return false
		}
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return false
	}
	return true
}

// fieldErrors flattens validation errors into field -> message.
func fieldErrors(err error) map[string]string {
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return map[string]string{"form": err.Error()}
	}

	out := make(map[string]string, len(errs))
	for field, e := range errs {
		out[field] = e.Error()
	}
	return out
}
