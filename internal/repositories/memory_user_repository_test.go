package repositories

import (
	"context"
	"testing"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepositoryLookups(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepository()

	u := &models.User{Name: "Ana", Email: "ana@example.com", Phone: "555"}
	require.NoError(t, r.CreateUser(ctx, u))
	require.NotEmpty(t, u.ID)
	require.NoError(t, r.CreateUser(ctx, &models.User{Name: "Seed"}))

	byEmail, err := r.GetUserByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byPhone, err := r.GetUserByIdentifier(ctx, "555")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byPhone.ID)

	_, err = r.GetUserByEmail(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = r.GetUserByFirebaseUID(ctx, "")
	assert.ErrorIs(t, err, ErrNotFound)

	found, err := r.GetUsersByIDs(ctx, []string{u.ID, "missing"})
	require.NoError(t, err)
	require.Len(t, found, 1)

	assert.ErrorIs(t, r.UpdateUser(ctx, &models.User{ID: "missing"}), ErrNotFound)
}

func TestMemoryFriendships(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepository()

	require.NoError(t, r.AddFriend(ctx, "u1", "f1"))
	require.NoError(t, r.AddFriend(ctx, "u1", "f1"))
	require.NoError(t, r.AddFriend(ctx, "u1", "f2"))

	n, err := r.CountFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	ids, err := r.GetFriendIDs(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "f2"}, ids)

	require.NoError(t, r.DeleteAllFriendships(ctx))
	n, err = r.CountFriends(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, n)

	r.SetOffline(true)
	_, err = r.CountFriends(ctx, "u1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestMemoryUserRepositoryUniqueEmail(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryUserRepository()

	ana := &models.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, r.CreateUser(ctx, ana))
	err := r.CreateUser(ctx, &models.User{Name: "Copy", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// users without an email never collide
	require.NoError(t, r.CreateUser(ctx, &models.User{Name: "Seed"}))
	require.NoError(t, r.CreateUser(ctx, &models.User{Name: "Seed 2"}))

	bo := &models.User{Name: "Bo", Email: "bo@example.com"}
	require.NoError(t, r.CreateUser(ctx, bo))
	bo.Email = "ana@example.com"
	assert.ErrorIs(t, r.UpdateUser(ctx, bo), ErrDuplicate)

	ana.Name = "Ana B"
	require.NoError(t, r.UpdateUser(ctx, ana))
}
