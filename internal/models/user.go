package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents a registered account. The password is stored only as a
// bcrypt hash, never the plaintext.
type User struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Name         string        `bson:"name"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password"`
	CreatedAt    time.Time     `bson:"created_at"`
}
