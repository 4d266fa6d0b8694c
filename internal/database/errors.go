package database

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateEmail is returned when a user with that email already
	// exists. The unique index on users.email is the real authority; an
	// insert that loses a registration race surfaces this error too.
	ErrDuplicateEmail = errors.New("email already registered")
)
