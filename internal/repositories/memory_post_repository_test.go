package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryPostRepositoryLifecycle(t *testing.T) {
	ctx := context.Background()
	r := NewMemoryPostRepository()
	base := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	older := &models.Post{AuthorID: "a", Caption: "older", CreatedAt: base}
	newer := &models.Post{AuthorID: "a", Caption: "newer", CreatedAt: base.Add(time.Hour)}
	require.NoError(t, r.CreatePost(ctx, older))
	require.NoError(t, r.CreatePost(ctx, newer))
	assert.NotNil(t, older.Likes)
	assert.NotNil(t, older.Comments)

	all, err := r.GetAllPosts(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Caption)

	n, err := r.CountPostsByAuthorBetween(ctx, "a", base, base.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	p, err := r.ToggleLike(ctx, older.ID.Hex(), "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, p.Likes)
	p.Likes[0] = "tampered"

	got, err := r.GetPostByID(ctx, older.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Likes)

	require.NoError(t, r.AddComment(ctx, older.ID.Hex(), models.Comment{UserName: "Bo", Text: "hi"}))
	require.NoError(t, r.DeletePost(ctx, older.ID.Hex()))
	assert.ErrorIs(t, r.DeletePost(ctx, older.ID.Hex()), ErrNotFound)
	_, err = r.GetPostByID(ctx, "zzz")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, r.DeleteAllPosts(ctx))
	all, err = r.GetAllPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestMemoryPostRepositoryOffline(t *testing.T) {
	r := NewMemoryPostRepository()
	r.SetOffline(true)

	err := r.CreatePost(context.Background(), &models.Post{AuthorID: "a"})
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	_, err = r.GetAllPosts(context.Background())
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	r.SetOffline(false)
	all, err := r.GetAllPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
