// Package view renders the HTML pages from embedded pongo2 templates.
package view

import (
	"embed"
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.html
var templateFS embed.FS

// ErrWrite marks a failure after the response has started.
var ErrWrite = errors.New("writing response")

// Data is the template context.
type Data = pongo2.Context

// Renderer holds the parsed templates keyed by file name without extension.
type Renderer struct {
	templates map[string]*pongo2.Template
}

// New parses every embedded template.
func New() (*Renderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*pongo2.Template, len(entries))}
	for _, e := range entries {
		src, err := templateFS.ReadFile(path.Join("templates", e.Name()))
		if err != nil {
			return nil, err
		}
		tpl, err := pongo2.FromString(string(src))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", e.Name(), err)
		}
		r.templates[strings.TrimSuffix(e.Name(), ".html")] = tpl
	}

	return r, nil
}

// Render executes the named template and writes it with status. Nothing is
// written when execution fails; errors wrapping ErrWrite mean the status line
// was already sent.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Data) error {
	tpl, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	out, err := tpl.Execute(data)
	if err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(out)); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWrite, name, err)
	}
	return nil
}
