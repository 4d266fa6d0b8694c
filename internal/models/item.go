package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Item is a single to-do entry. UserID is a non-owning back-reference to the
// user it belongs to; items are only reachable through routes scoped to that
// owner.
type Item struct {
	ID        bson.ObjectID `bson:"_id,omitempty"`
	Title     string        `bson:"title"`
	UserID    bson.ObjectID `bson:"userId"`
	CreatedAt time.Time     `bson:"created_at"`
}
