package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserStoreCreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	created, err := store.Create(ctx, "Alice", "a@x.com", "pw1")
	require.NoError(t, err)
	assert.False(t, created.ID.IsZero())
	assert.Equal(t, "Alice", created.Name)
	assert.False(t, created.CreatedAt.IsZero())

	byEmail, err := store.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byID, err := store.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", byID.Email)
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	_, err := store.Create(ctx, "Alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = store.Create(ctx, "Other Alice", "a@x.com", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserStoreEmailIsCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	_, err := store.Create(ctx, "Alice", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = store.GetByEmail(ctx, "A@X.COM")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	_, err := store.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPasswordNeverStoredPlaintext(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	user, err := store.Create(ctx, "Alice", "a@x.com", "pw1")
	require.NoError(t, err)

	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.NoError(t, VerifyPassword(user.PasswordHash, "pw1"))
	assert.Error(t, VerifyPassword(user.PasswordHash, "pw2"))
}

func TestItemStoreOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()
	items := NewMemoryItemStore()

	alice, err := users.Create(ctx, "Alice", "a@x.com", "pw1")
	require.NoError(t, err)
	bob, err := users.Create(ctx, "Bob", "b@x.com", "pw2")
	require.NoError(t, err)

	_, err = items.Create(ctx, "buy milk", alice.ID)
	require.NoError(t, err)
	_, err = items.Create(ctx, "walk dog", alice.ID)
	require.NoError(t, err)
	_, err = items.Create(ctx, "file taxes", bob.ID)
	require.NoError(t, err)

	aliceItems, err := items.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceItems, 2)
	// Insertion order, no sorting.
	assert.Equal(t, "buy milk", aliceItems[0].Title)
	assert.Equal(t, "walk dog", aliceItems[1].Title)

	bobItems, err := items.ListByOwner(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, bobItems, 1)
	assert.Equal(t, "file taxes", bobItems[0].Title)
}

func TestItemStoreDeleteTwice(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUserStore()
	items := NewMemoryItemStore()

	alice, err := users.Create(ctx, "Alice", "a@x.com", "pw1")
	require.NoError(t, err)
	item, err := items.Create(ctx, "buy milk", alice.ID)
	require.NoError(t, err)

	require.NoError(t, items.Delete(ctx, item.ID))
	assert.ErrorIs(t, items.Delete(ctx, item.ID), ErrNotFound)

	left, err := items.ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, left)
}
