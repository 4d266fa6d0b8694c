// Package handlers wires the HTTP surface: route handlers, the auth gates,
// and template rendering.
package handlers

import (
	"context"
	"log/slog"

	"github.com/authtodo/app/internal/database"
	"github.com/authtodo/app/internal/models"
	"github.com/authtodo/app/internal/session"
)

// Handler bundles the request-scoped collaborators: stores, session manager,
// templates, and the diagnostic log sink. It is built once at process start
// so nothing here is ambient global state.
type Handler struct {
	Users    database.UserStore
	Items    database.ItemStore
	Sessions *session.Manager
	Log      *slog.Logger
	tmpl     *Templates
}

func New(users database.UserStore, items database.ItemStore, sessions *session.Manager, tmpl *Templates, log *slog.Logger) *Handler {
	return &Handler{
		Users:    users,
		Items:    items,
		Sessions: sessions,
		Log:      log,
		tmpl:     tmpl,
	}
}

type contextKey int

const (
	sessionKey contextKey = iota
	userKey
)

// sessionFrom returns the request's session, or nil when anonymous without
// a session record.
func sessionFrom(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(sessionKey).(*session.Session)
	return sess
}

// userFrom returns the authenticated user, or nil for anonymous requests.
func userFrom(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey).(*models.User)
	return user
}
