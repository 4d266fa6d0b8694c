package handlers

import (
	"errors"
	"net/http"

	"github.com/authtodo/app/internal/database"
)

// Flash texts shown to the user. Unknown email and wrong password share one
// message so registered addresses cannot be probed.
const (
	flashMissingFields      = "All fields are required"
	flashDuplicateEmail     = "User with that email already exists"
	flashInvalidCredentials = "Invalid email or password"
)

var errMissingFields = errors.New("all fields are required")

// registerForm is the validated input for POST /register.
type registerForm struct {
	Name     string
	Email    string
	Password string
}

// parseRegisterForm applies the first validation rule: all three fields must
// be non-empty. The duplicate-email rule runs against the store afterwards.
func parseRegisterForm(r *http.Request) (registerForm, error) {
	if err := r.ParseForm(); err != nil {
		return registerForm{}, err
	}
	f := registerForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if f.Name == "" || f.Email == "" || f.Password == "" {
		return registerForm{}, errMissingFields
	}
	return f, nil
}

// loginForm is the validated input for POST /login.
type loginForm struct {
	Email    string
	Password string
}

func parseLoginForm(r *http.Request) (loginForm, error) {
	if err := r.ParseForm(); err != nil {
		return loginForm{}, err
	}
	f := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	if f.Email == "" || f.Password == "" {
		return loginForm{}, errMissingFields
	}
	return f, nil
}

// flashAndRedirect queues a one-time message and sends the client back.
func (h *Handler) flashAndRedirect(w http.ResponseWriter, r *http.Request, msg, target string) {
	sess, err := h.Sessions.LoadOrNew(w, r)
	if err != nil {
		h.Log.Error("create flash session", "error", err)
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}
	sess.AddFlash(msg)
	if err := h.Sessions.Save(r.Context(), w, sess); err != nil {
		h.Log.Error("save flash session", "error", err)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderWithFlash(w, r, "auth/register.html", nil)
}

// Register handles the registration form submission. On success the user is
// sent to /login; registration does not log them in.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	form, err := parseRegisterForm(r)
	if err != nil {
		h.flashAndRedirect(w, r, flashMissingFields, "/register")
		return
	}

	// Fast-path duplicate check; the unique index on email is what actually
	// wins a concurrent registration race.
	if _, err := h.Users.GetByEmail(r.Context(), form.Email); err == nil {
		h.flashAndRedirect(w, r, flashDuplicateEmail, "/register")
		return
	} else if !errors.Is(err, database.ErrNotFound) {
		h.Log.Error("lookup email", "error", err)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	if _, err := h.Users.Create(r.Context(), form.Name, form.Email, form.Password); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			h.flashAndRedirect(w, r, flashDuplicateEmail, "/register")
			return
		}
		h.Log.Error("create user", "error", err)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderWithFlash(w, r, "auth/login.html", nil)
}

// Login runs the authentication strategy: exact email lookup, then password
// verification against the stored hash. Success binds the session to the
// user and redirects home.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	form, err := parseLoginForm(r)
	if err != nil {
		h.flashAndRedirect(w, r, flashInvalidCredentials, "/login")
		return
	}

	user, err := h.Users.GetByEmail(r.Context(), form.Email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			h.flashAndRedirect(w, r, flashInvalidCredentials, "/login")
			return
		}
		h.Log.Error("lookup user", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := database.VerifyPassword(user.PasswordHash, form.Password); err != nil {
		h.flashAndRedirect(w, r, flashInvalidCredentials, "/login")
		return
	}

	sess, err := h.Sessions.LoadOrNew(w, r)
	if err != nil {
		h.Log.Error("create session", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := sess.Authenticate(user.ID.Hex()); err != nil {
		h.Log.Error("authenticate session", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := h.Sessions.Save(r.Context(), w, sess); err != nil {
		h.Log.Error("save session", "error", err)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the session immediately and redirects to the login page.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), w, sessionFrom(r.Context())); err != nil {
		h.Log.Error("destroy session", "error", err)
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
