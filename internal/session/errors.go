package session

import "errors"

var (
	// ErrNotFound is returned when a session cannot be found in the store.
	ErrNotFound = errors.New("session not found")
	// ErrNoSession is returned when the request carries no valid session.
	ErrNoSession = errors.New("no session on request")
	// ErrInvalidCookie is returned when a cookie value fails signature
	// verification.
	ErrInvalidCookie = errors.New("invalid session cookie")
)
