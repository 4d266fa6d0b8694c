package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/authtodo/app/internal/database"
	"github.com/authtodo/app/internal/models"
	"github.com/authtodo/app/internal/session"
)

// WithSession resolves the request's session and, when it is bound to a
// user, reconstitutes the full User from the credential store. A session
// whose user no longer exists is destroyed and the request proceeds as
// anonymous.
func (h *Handler) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := h.Sessions.Load(r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				h.Log.Error("load session", "error", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sess)
		if sess.IsAuthenticated() {
			user, err := h.lookupSessionUser(ctx, sess.UserID)
			if err != nil {
				if !errors.Is(err, database.ErrNotFound) {
					h.Log.Error("load session user", "error", err)
				}
				_ = h.Sessions.Destroy(r.Context(), w, sess)
				next.ServeHTTP(w, r)
				return
			}
			ctx = context.WithValue(ctx, userKey, user)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) lookupSessionUser(ctx context.Context, hexID string) (*models.User, error) {
	id, err := bson.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, database.ErrNotFound
	}
	return h.Users.GetByID(ctx, id)
}

// RequireAuthenticated short-circuits anonymous requests to the login page
// without running the handler.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAnonymous short-circuits already-authenticated requests to the home
// page, so a logged-in user cannot re-register or re-login.
func RequireAnonymous(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userFrom(r.Context()) != nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// MethodOverride rewrites POST requests carrying a _method form field, so a
// plain html form can reach the DELETE /logout route.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch strings.ToUpper(r.PostFormValue("_method")) {
			case http.MethodDelete:
				r.Method = http.MethodDelete
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			}
		}
		next.ServeHTTP(w, r)
	})
}
