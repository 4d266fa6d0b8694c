package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/authtodo/app/internal/database"
)

// HomePage renders the signed-in user's items, newest last.
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	items, err := h.Items.ListByOwner(r.Context(), user.ID)
	if err != nil {
		h.Log.Error("list items", "error", err)
		h.RenderErrorPage(w, r, http.StatusInternalServerError, "Something went wrong", "Could not load your items. Please try again.")
		return
	}

	h.renderWithFlash(w, r, "items/index.html", map[string]any{
		"Name":  user.Name,
		"Items": items,
	})
}

// addItemForm is the input for POST /add. The title is taken verbatim; no
// trimming or sanitization.
type addItemForm struct {
	Title string
}

func parseAddItemForm(r *http.Request) (addItemForm, error) {
	if err := r.ParseForm(); err != nil {
		return addItemForm{}, err
	}
	return addItemForm{Title: r.PostFormValue("todo")}, nil
}

// AddItem creates an item owned by the session user and redirects home.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	form, err := parseAddItemForm(r)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if _, err := h.Items.Create(r.Context(), form.Title, user.ID); err != nil {
		h.Log.Error("create item", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteItem removes one of the session user's items. Deleting an id that no
// longer exists is a silent no-op, so repeat deletes still redirect cleanly.
// Deleting another user's item is forbidden.
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	id, err := bson.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	item, err := h.Items.GetByID(r.Context(), id)
	if err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			h.Log.Error("load item", "error", err)
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if item.UserID != user.ID {
		h.RenderErrorPage(w, r, http.StatusForbidden, "Forbidden", "You do not own this item.")
		return
	}

	if err := h.Items.Delete(r.Context(), id); err != nil && !errors.Is(err, database.ErrNotFound) {
		h.Log.Error("delete item", "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
