package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/public-space/backend/internal/events"
	"github.com/anonto42/public-space/backend/internal/locker"
	"github.com/anonto42/public-space/backend/internal/media"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.t = t
	c.mu.Unlock()
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

type postFixture struct {
	svc    *PostService
	users  *repositories.MemoryUserRepository
	posts  *repositories.MemoryPostRepository
	events *events.Recorder
	clock  *fakeClock
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	f := &postFixture{
		users:  repositories.NewMemoryUserRepository(),
		posts:  repositories.NewMemoryPostRepository(),
		events: &events.Recorder{},
		clock:  &fakeClock{t: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)},
	}
	f.svc = NewPostService(f.users, f.users, f.posts, locker.NewMemory(), media.Fixed("https://example.com/a.jpg"), f.events)
	f.svc.SetClock(f.clock.Now)
	return f
}

func (f *postFixture) user(t *testing.T, name string, friends int) string {
	t.Helper()
	ctx := context.Background()
	u := &models.User{Name: name}
	require.NoError(t, f.users.CreateUser(ctx, u))
	for i := 0; i < friends; i++ {
		require.NoError(t, f.users.AddFriend(ctx, u.ID, fmt.Sprintf("friend-%d", i)))
	}
	return u.ID
}

func TestCreatePostTwoFriends(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	uid := f.user(t, "Ana", 2)

	p, err := f.svc.CreatePost(ctx, uid, "first")
	require.NoError(t, err)
	assert.Equal(t, uid, p.AuthorID)
	assert.Equal(t, "https://example.com/a.jpg", p.MediaURL)
	assert.False(t, p.ID.IsZero())

	st, err := f.svc.GetStatus(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "1", st.Remaining.String())

	f.clock.Advance(time.Minute)
	_, err = f.svc.CreatePost(ctx, uid, "second")
	require.NoError(t, err)
	st, err = f.svc.GetStatus(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "0", st.Remaining.String())

	_, err = f.svc.CreatePost(ctx, uid, "third")
	require.ErrorIs(t, err, ErrQuotaExceeded)
	assert.Contains(t, err.Error(), "reached your limit of 2 posts for today")

	st, err = f.svc.GetStatus(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "Ana", st.Name)
	assert.Equal(t, 2, st.FriendCount)
	assert.Equal(t, "0", st.Remaining.String())
}

func TestCreatePostWithoutFriendsIsDenied(t *testing.T) {
	f := newPostFixture(t)
	uid := f.user(t, "Lonely", 0)

	for day := 0; day < 3; day++ {
		_, err := f.svc.CreatePost(context.Background(), uid, "hello")
		require.ErrorIs(t, err, ErrQuotaExceeded)
		assert.Contains(t, err.Error(), "need at least 1 friend to post")
		f.clock.Advance(24 * time.Hour)
	}

	feed, err := f.svc.ListFeed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, feed)
}

func TestCreatePostUnknownUser(t *testing.T) {
	f := newPostFixture(t)
	_, err := f.svc.CreatePost(context.Background(), "nobody", "hi")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCreatePostUnlimitedTier(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	uid := f.user(t, "Popular", 11)

	for i := 0; i < 15; i++ {
		_, err := f.svc.CreatePost(ctx, uid, "again")
		require.NoError(t, err)
	}
	st, err := f.svc.GetStatus(ctx, uid)
	require.NoError(t, err)
	assert.True(t, st.Remaining.Unlimited)
}

func TestQuotaWindowSplitsAtMidnight(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	uid := f.user(t, "Night owl", 1)

	f.clock.Set(time.Date(2024, 3, 10, 23, 59, 59, 0, time.UTC))
	_, err := f.svc.CreatePost(ctx, uid, "late")
	require.NoError(t, err)
	_, err = f.svc.CreatePost(ctx, uid, "too late")
	require.ErrorIs(t, err, ErrQuotaExceeded)

	f.clock.Set(time.Date(2024, 3, 11, 0, 0, 1, 0, time.UTC))
	st, err := f.svc.GetStatus(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "1", st.Remaining.String())

	_, err = f.svc.CreatePost(ctx, uid, "early")
	require.NoError(t, err)
}

func TestConcurrentCreatesNeverExceedCap(t *testing.T) {
	f := newPostFixture(t)
	uid := f.user(t, "Racer", 3)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed, denied := 0, 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.CreatePost(context.Background(), uid, "race")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				allowed++
			case errors.Is(err, ErrQuotaExceeded):
				denied++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, allowed)
	assert.Equal(t, 17, denied)
}

type failingInsert struct {
	*repositories.MemoryPostRepository
}

func (failingInsert) CreatePost(context.Context, *models.Post) error {
	return fmt.Errorf("%w: insert post: disk full", repositories.ErrStoreUnavailable)
}

func TestCreatePostStoreFailureLeavesNoPost(t *testing.T) {
	f := newPostFixture(t)
	svc := NewPostService(f.users, f.users, failingInsert{f.posts}, locker.NewMemory(), media.NewPicsumGenerator(), f.events)
	uid := f.user(t, "Unlucky", 2)

	_, err := svc.CreatePost(context.Background(), uid, "lost")
	require.ErrorIs(t, err, repositories.ErrStoreUnavailable)

	feed, err := svc.ListFeed(context.Background())
	require.NoError(t, err)
	assert.Empty(t, feed)
	assert.Empty(t, f.events.Types())

	st, err := svc.GetStatus(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, "2", st.Remaining.String())
}

func TestListFeedNewestFirstWithAuthorNames(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	ana := f.user(t, "Ana", 5)
	bo := f.user(t, "Bo", 5)

	_, err := f.svc.CreatePost(ctx, ana, "one")
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	_, err = f.svc.CreatePost(ctx, bo, "two")
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	require.NoError(t, f.posts.CreatePost(ctx, &models.Post{AuthorID: "ghost", Caption: "orphan", CreatedAt: f.clock.Now()}))

	u, err := f.users.GetUserByID(ctx, ana)
	require.NoError(t, err)
	u.Name = "Ana Renamed"
	require.NoError(t, f.users.UpdateUser(ctx, u))

	feed, err := f.svc.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 3)

	assert.Equal(t, "orphan", feed[0].Caption)
	assert.Nil(t, feed[0].AuthorName)
	assert.Equal(t, "two", feed[1].Caption)
	require.NotNil(t, feed[1].AuthorName)
	assert.Equal(t, "Bo", *feed[1].AuthorName)
	require.NotNil(t, feed[2].AuthorName)
	assert.Equal(t, "Ana Renamed", *feed[2].AuthorName)
}

func TestToggleLike(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	uid := f.user(t, "Ana", 1)
	p, err := f.svc.CreatePost(ctx, uid, "like me")
	require.NoError(t, err)

	res, err := f.svc.ToggleLike(ctx, p.ID.Hex(), "u2")
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Liked: true, Likes: 1}, res)

	res, err = f.svc.ToggleLike(ctx, p.ID.Hex(), "u2")
	require.NoError(t, err)
	assert.Equal(t, &LikeResult{Liked: false, Likes: 0}, res)

	_, err = f.svc.ToggleLike(ctx, "000000000000000000000000", "u2")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.Equal(t, []string{events.PostCreated, events.PostLiked, events.PostUnliked}, f.events.Types())
}

func TestAddComment(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	uid := f.user(t, "Ana", 1)
	p, err := f.svc.CreatePost(ctx, uid, "talk")
	require.NoError(t, err)

	require.NoError(t, f.svc.AddComment(ctx, p.ID.Hex(), "", "first"))
	require.NoError(t, f.svc.AddComment(ctx, p.ID.Hex(), "Bo", "second"))

	got, err := f.posts.GetPostByID(ctx, p.ID.Hex())
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "User", got.Comments[0].UserName)
	assert.Equal(t, "first", got.Comments[0].Text)
	assert.Equal(t, "Bo", got.Comments[1].UserName)

	err = f.svc.AddComment(ctx, "not-an-id", "Bo", "lost")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestDeletePostRemovesItFromFeed(t *testing.T) {
	f := newPostFixture(t)
	ctx := context.Background()
	uid := f.user(t, "Ana", 2)
	keep, err := f.svc.CreatePost(ctx, uid, "keep")
	require.NoError(t, err)
	gone, err := f.svc.CreatePost(ctx, uid, "gone")
	require.NoError(t, err)
	_, err = f.svc.ToggleLike(ctx, gone.ID.Hex(), "u2")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeletePost(ctx, gone.ID.Hex()))
	require.NoError(t, f.svc.DeletePost(ctx, gone.ID.Hex()))

	feed, err := f.svc.ListFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, keep.ID, feed[0].ID)

	f.posts.SetOffline(true)
	assert.ErrorIs(t, f.svc.DeletePost(ctx, keep.ID.Hex()), repositories.ErrStoreUnavailable)
}

func TestPublishFailureDoesNotFailRequest(t *testing.T) {
	f := newPostFixture(t)
	f.events.ShouldFail = true
	uid := f.user(t, "Ana", 1)

	_, err := f.svc.CreatePost(context.Background(), uid, "quiet")
	assert.NoError(t, err)
}
