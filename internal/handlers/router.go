package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Routes builds the full HTTP surface. Every route passes through the
// session middleware and declares exactly one gate; the gates are composed
// as middleware ahead of the handler rather than checked inside it.
func (h *Handler) Routes(staticDir string) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(h.requestLogger)
	r.Use(MethodOverride)
	r.Use(h.WithSession)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuthenticated)
		r.Get("/", h.HomePage)
		r.Post("/add", h.AddItem)
		r.Post("/{id}/delete", h.DeleteItem)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequireAnonymous)
		r.Get("/register", h.RegisterPage)
		r.Post("/register", h.Register)
		r.Get("/login", h.LoginPage)
		r.Post("/login", h.Login)
	})

	r.Delete("/logout", h.Logout)

	if staticDir != "" {
		fs := http.FileServer(http.Dir(staticDir))
		r.Handle("/static/*", http.StripPrefix("/static/", fs))
	}

	r.NotFound(h.NotFound)
	return r
}

// requestLogger emits one structured line per request.
func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.Log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status_code", ww.Status(),
			"latency", time.Since(start),
		)
	})
}
