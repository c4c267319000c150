package services

import (
	"context"
	"testing"

	"github.com/anonto42/public-space/backend/internal/events"
	"github.com/anonto42/public-space/backend/internal/locker"
	"github.com/anonto42/public-space/backend/internal/media"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedResetsStores(t *testing.T) {
	ctx := context.Background()
	users := repositories.NewMemoryUserRepository()
	posts := repositories.NewMemoryPostRepository()

	old := &models.User{Name: "Old"}
	require.NoError(t, users.CreateUser(ctx, old))
	require.NoError(t, users.AddFriend(ctx, old.ID, "x"))
	require.NoError(t, posts.CreatePost(ctx, &models.Post{AuthorID: old.ID, Caption: "old"}))

	seedID, err := NewSeeder(users, users, posts).Seed(ctx)
	require.NoError(t, err)

	_, err = users.GetUserByID(ctx, old.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	n, err := users.CountFriends(ctx, old.ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	svc := NewPostService(users, users, posts, locker.NewMemory(), media.NewPicsumGenerator(), events.Noop{})
	feed, err := svc.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, SeedCaption, feed[0].Caption)
	assert.Equal(t, media.WelcomeURL, feed[0].MediaURL)
	require.NotNil(t, feed[0].AuthorName)
	assert.Equal(t, SeedUserName, *feed[0].AuthorName)

	st, err := svc.GetStatus(ctx, seedID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.FriendCount)
	assert.Equal(t, "1", st.Remaining.String())
}

func TestSeedStoreFailure(t *testing.T) {
	users := repositories.NewMemoryUserRepository()
	posts := repositories.NewMemoryPostRepository()
	posts.SetOffline(true)

	_, err := NewSeeder(users, users, posts).Seed(context.Background())
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
}
