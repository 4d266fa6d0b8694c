package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Templates holds the parsed page templates, keyed by path relative to the
// templates directory, e.g. "auth/login.html".
type Templates struct {
	pages map[string]*template.Template
}

// LoadTemplates parses every page under dir against layout.html. Pages fill
// the layout's "content" block. Called once at startup.
func LoadTemplates(dir string) (*Templates, error) {
	layout := filepath.Join(dir, "layout.html")
	if _, err := os.Stat(layout); err != nil {
		return nil, fmt.Errorf("layout.html not found in %s: %w", dir, err)
	}

	pages := make(map[string]*template.Template)
	for _, pattern := range []string{"*.html", "*/*.html"} {
		files, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			if file == layout {
				continue
			}
			name := filepath.ToSlash(strings.TrimPrefix(file, dir+string(filepath.Separator)))
			tmpl, err := template.ParseFiles(layout, file)
			if err != nil {
				return nil, fmt.Errorf("parse template %s: %w", name, err)
			}
			pages[name] = tmpl
		}
	}
	return &Templates{pages: pages}, nil
}

// Render writes the named page with the given status. The page is executed
// into a buffer first so a template failure does not leak a half-written
// response.
func (t *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tmpl, ok := t.pages[name]
	if !ok {
		http.Error(w, "template not found: "+name, http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		http.Error(w, "render "+name+": "+err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderWithFlash renders a page, folding in the authenticated user and any
// queued flash messages. Popping flashes mutates the session, so it is saved
// back before the page is written.
func (h *Handler) renderWithFlash(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	if sess := sessionFrom(r.Context()); sess != nil {
		if msgs := sess.PopFlash(); len(msgs) > 0 {
			data["Flash"] = msgs
			if err := h.Sessions.Save(r.Context(), w, sess); err != nil {
				h.Log.Error("save session after flash pop", "error", err)
			}
		}
	}
	if user := userFrom(r.Context()); user != nil {
		data["User"] = user
	}
	h.tmpl.Render(w, http.StatusOK, name, data)
}

// RenderErrorPage renders the shared error page.
func (h *Handler) RenderErrorPage(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	data := map[string]any{
		"Title":      title,
		"StatusCode": status,
		"StatusText": http.StatusText(status),
		"Message":    message,
	}
	if user := userFrom(r.Context()); user != nil {
		data["User"] = user
	}
	h.tmpl.Render(w, status, "error.html", data)
}

// NotFound is the router's fallback handler.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.RenderErrorPage(w, r, http.StatusNotFound, "Page Not Found", "The page you are looking for does not exist.")
}
