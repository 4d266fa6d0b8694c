package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/authtodo/app/internal/models"
)

// UserStore persists user records.
type UserStore interface {
	Create(ctx context.Context, name, email, password string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error)
}

// MongoUserStore is the users collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(db *mongo.Database) *MongoUserStore {
	return &MongoUserStore{coll: db.Collection("users")}
}

// EnsureIndexes creates the unique index on email. The index, not the
// application-level lookup, is what rejects concurrent duplicate
// registrations.
func (s *MongoUserStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create hashes the password and inserts a new user.
func (s *MongoUserStore) Create(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           bson.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail retrieves a user by exact email match.
func (s *MongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by identity.
func (s *MongoUserStore) GetByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	user := &models.User{}
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
