package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(NewMemoryStore(), testSecret, ttl)
}

// requestWith carries the recorder's cookies over to a fresh request, the
// way a browser would on the next round trip.
func requestWith(w *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestLoadWithoutCookie(t *testing.T) {
	m := newTestManager(time.Hour)

	_, err := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLoadOrNewRoundTrip(t *testing.T) {
	m := newTestManager(time.Hour)
	w := httptest.NewRecorder()

	sess, err := m.LoadOrNew(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())

	loaded, err := m.Load(requestWith(w))
	require.NoError(t, err)
	assert.Equal(t, sess.ID, loaded.ID)
	assert.Equal(t, sess.Token, loaded.Token)
}

func TestLoadRejectsTamperedCookie(t *testing.T) {
	m := newTestManager(time.Hour)
	w := httptest.NewRecorder()

	sess, err := m.LoadOrNew(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token + ".forged-signature"})
	_, err = m.Load(r)
	assert.ErrorIs(t, err, ErrNoSession)

	// A bare unsigned token is rejected too.
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieName, Value: sess.Token})
	_, err = m.Load(r)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestAuthenticateRotatesToken(t *testing.T) {
	m := newTestManager(time.Hour)
	w := httptest.NewRecorder()

	sess, err := m.LoadOrNew(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	oldCookie := requestWith(w)

	oldToken := sess.Token
	require.NoError(t, sess.Authenticate("68aa000000000000000000aa"))
	assert.NotEqual(t, oldToken, sess.Token)
	assert.True(t, sess.IsAuthenticated())

	w2 := httptest.NewRecorder()
	require.NoError(t, m.Save(context.Background(), w2, sess))

	// Pre-login cookie no longer resolves.
	_, err = m.Load(oldCookie)
	assert.ErrorIs(t, err, ErrNoSession)

	loaded, err := m.Load(requestWith(w2))
	require.NoError(t, err)
	assert.Equal(t, "68aa000000000000000000aa", loaded.UserID)
}

func TestDestroyInvalidatesImmediately(t *testing.T) {
	m := newTestManager(time.Hour)
	w := httptest.NewRecorder()

	sess, err := m.LoadOrNew(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	cookie := requestWith(w)

	w2 := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), w2, sess))

	_, err = m.Load(cookie)
	assert.ErrorIs(t, err, ErrNoSession)

	// Destroying with no session still expires the client cookie.
	w3 := httptest.NewRecorder()
	require.NoError(t, m.Destroy(context.Background(), w3, nil))
	cookies := w3.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestExpiredSessionIsAnonymous(t *testing.T) {
	m := newTestManager(-time.Minute)
	w := httptest.NewRecorder()

	_, err := m.LoadOrNew(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}
	_, err = m.Load(r)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFlashPopsOnce(t *testing.T) {
	sess, err := New(time.Hour)
	require.NoError(t, err)

	sess.AddFlash("Invalid email or password")
	sess.AddFlash("All fields are required")

	msgs := sess.PopFlash()
	assert.Equal(t, []string{"Invalid email or password", "All fields are required"}, msgs)
	assert.Empty(t, sess.PopFlash())
}
