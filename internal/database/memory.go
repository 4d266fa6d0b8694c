package database

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/authtodo/app/internal/models"
)

// In-memory store implementations. MongoDB has no embedded mode, so handler
// tests run against these; they honor the same error contract as the Mongo
// stores.

// MemoryUserStore keeps users in a slice guarded by a mutex.
type MemoryUserStore struct {
	mu    sync.Mutex
	users []models.User
}

func NewMemoryUserStore() *MemoryUserStore {
	return &MemoryUserStore{}
}

func (s *MemoryUserStore) Create(_ context.Context, name, email, password string) (*models.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return nil, ErrDuplicateEmail
		}
	}
	user := models.User{
		ID:           bson.NewObjectID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	s.users = append(s.users, user)
	return &user, nil
}

func (s *MemoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryUserStore) GetByID(_ context.Context, id bson.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// Remove deletes a user by email. The application never deletes users; this
// simulates external deletion so session reconstitution can be exercised.
func (s *MemoryUserStore) Remove(_ context.Context, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.users {
		if u.Email == email {
			s.users = append(s.users[:i], s.users[i+1:]...)
			return
		}
	}
}

// MemoryItemStore keeps items in insertion order.
type MemoryItemStore struct {
	mu    sync.Mutex
	items []models.Item
}

func NewMemoryItemStore() *MemoryItemStore {
	return &MemoryItemStore{}
}

func (s *MemoryItemStore) Create(_ context.Context, title string, owner bson.ObjectID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item := models.Item{
		ID:        bson.NewObjectID(),
		Title:     title,
		UserID:    owner,
		CreatedAt: time.Now().UTC(),
	}
	s.items = append(s.items, item)
	return &item, nil
}

func (s *MemoryItemStore) ListByOwner(_ context.Context, owner bson.ObjectID) ([]models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Item
	for _, it := range s.items {
		if it.UserID == owner {
			out = append(out, it)
		}
	}
	return out, nil
}

func (s *MemoryItemStore) GetByID(_ context.Context, id bson.ObjectID) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryItemStore) Delete(_ context.Context, id bson.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}
