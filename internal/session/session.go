// Package session provides server-side session records and the signed
// cookie transport that correlates a client's requests with them.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/google/uuid"
)

// Session correlates a client's requests with a user identity. UserID holds
// the owning user's id in hex form, or "" while the session is anonymous.
// Flash holds single-use messages shown on the next rendered page.
type Session struct {
	ID        string    `bson:"_id"`
	Token     string    `bson:"token"`
	UserID    string    `bson:"user_id"`
	Flash     []string  `bson:"flash,omitempty"`
	ExpiresAt time.Time `bson:"expires_at"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// New creates an anonymous session with a fresh token.
func New(ttl time.Duration) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Token:     token,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Authenticate binds the session to a user and rotates the token so the
// pre-login cookie value cannot be replayed.
func (s *Session) Authenticate(userID string) error {
	token, err := generateToken()
	if err != nil {
		return err
	}
	s.Token = token
	s.UserID = userID
	s.UpdatedAt = time.Now().UTC()
	return nil
}

// IsAuthenticated reports whether the session is bound to a user identity.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// IsExpired reports whether the session has passed its idle expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// AddFlash queues a message for one-time display.
func (s *Session) AddFlash(msg string) {
	s.Flash = append(s.Flash, msg)
	s.UpdatedAt = time.Now().UTC()
}

// PopFlash returns the queued messages and clears the queue.
func (s *Session) PopFlash() []string {
	msgs := s.Flash
	s.Flash = nil
	if len(msgs) > 0 {
		s.UpdatedAt = time.Now().UTC()
	}
	return msgs
}

// generateToken returns 32 random bytes (256 bits) base64url-encoded.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
