package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/authtodo/app/internal/models"
)

// ItemStore persists to-do items.
type ItemStore interface {
	Create(ctx context.Context, title string, owner bson.ObjectID) (*models.Item, error)
	ListByOwner(ctx context.Context, owner bson.ObjectID) ([]models.Item, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.Item, error)
	Delete(ctx context.Context, id bson.ObjectID) error
}

// MongoItemStore is the items collection.
type MongoItemStore struct {
	coll *mongo.Collection
}

func NewMongoItemStore(db *mongo.Database) *MongoItemStore {
	return &MongoItemStore{coll: db.Collection("items")}
}

// Create inserts an item owned by the given user. The title is stored
// verbatim.
func (s *MongoItemStore) Create(ctx context.Context, title string, owner bson.ObjectID) (*models.Item, error) {
	item := &models.Item{
		ID:        bson.NewObjectID(),
		Title:     title,
		UserID:    owner,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// ListByOwner returns the items belonging to one user in insertion order.
func (s *MongoItemStore) ListByOwner(ctx context.Context, owner bson.ObjectID) ([]models.Item, error) {
	cur, err := s.coll.Find(ctx, bson.M{"userId": owner})
	if err != nil {
		return nil, err
	}
	var items []models.Item
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetByID retrieves an item by identity.
func (s *MongoItemStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.Item, error) {
	item := &models.Item{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item by identity. Returns ErrNotFound when no document
// matched, so callers can treat repeat deletes as a no-op.
func (s *MongoItemStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
