// Package web serves the HTML pages of the notes application.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"sync"
)

//go:embed templates
var templatesFS embed.FS

// Renderer manages HTML template rendering. Every page template is combined
// with base.html and executed through the "base" entry point.
type Renderer struct {
	mu    sync.RWMutex
	pages map[string]*template.Template
}

// NewRenderer parses all embedded page templates against base.html.
func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}

	err := fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".html") || path.Base(p) == "base.html" {
			return nil
		}
		name := strings.TrimPrefix(p, "templates/")
		tmpl, err := template.ParseFS(templatesFS, "templates/base.html", p)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the named page template with data and writes it with the
// given status code.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	r.mu.RLock()
	tmpl, ok := r.pages[name]
	r.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	return tmpl.ExecuteTemplate(w, "base", data)
}
