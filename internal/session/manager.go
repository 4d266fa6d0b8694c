package session

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "session_token"

// Manager owns session persistence and the signed cookie transport. The
// cookie carries only the session token, HMAC-SHA256-signed with the
// configured secret; everything else lives in the store.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session time-to-live.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Load returns the live session for the request. Requests without a cookie,
// with a tampered cookie, or whose session is missing or expired get
// ErrNoSession; any other error is a store failure.
func (m *Manager) Load(r *http.Request) (*Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	token, err := m.verify(c.Value)
	if err != nil {
		return nil, ErrNoSession
	}
	sess, err := m.store.GetByToken(r.Context(), token)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	if sess.IsExpired() {
		_ = m.store.Delete(r.Context(), sess.ID)
		return nil, ErrNoSession
	}
	return sess, nil
}

// LoadOrNew returns the request's session, creating and persisting an
// anonymous one when none exists. Handlers use this to queue flash messages
// for clients that have not logged in yet.
func (m *Manager) LoadOrNew(w http.ResponseWriter, r *http.Request) (*Session, error) {
	sess, err := m.Load(r)
	if err == nil {
		return sess, nil
	}
	if !errors.Is(err, ErrNoSession) {
		return nil, err
	}

	sess, err = New(m.ttl)
	if err != nil {
		return nil, err
	}
	if err := m.store.Save(r.Context(), sess); err != nil {
		return nil, err
	}
	m.setCookie(w, sess)
	return sess, nil
}

// Save persists session mutations and refreshes the cookie, since the token
// may have rotated.
func (m *Manager) Save(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if err := m.store.Save(ctx, sess); err != nil {
		return err
	}
	m.setCookie(w, sess)
	return nil
}

// Destroy deletes the session record immediately and expires the cookie.
// A nil session still clears the cookie.
func (m *Manager) Destroy(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if sess != nil {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) setCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    m.sign(sess.Token),
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sign appends an HMAC-SHA256 signature to the token.
func (m *Manager) sign(token string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	return token + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// verify checks the signature on a cookie value and returns the bare token.
func (m *Manager) verify(value string) (string, error) {
	token, sig, ok := strings.Cut(value, ".")
	if !ok {
		return "", ErrInvalidCookie
	}
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(token))
	expected := base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return "", ErrInvalidCookie
	}
	return token, nil
}
