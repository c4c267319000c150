package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anonto42/public-space/backend/internal/events"
	"github.com/anonto42/public-space/backend/internal/locker"
	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/anonto42/public-space/backend/internal/media"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/policy"
	"github.com/anonto42/public-space/backend/internal/repositories"
)

const defaultCommenter = "User"

// UserStatus is the quota summary shown to a user.
type UserStatus struct {
	Name        string           `json:"name"`
	FriendCount int              `json:"friendCount"`
	Remaining   policy.Remaining `json:"remaining"`
}

// LikeResult is the like state after a toggle.
type LikeResult struct {
	Liked bool `json:"liked"`
	Likes int  `json:"likes"`
}

// PostService owns the post lifecycle and the daily quota.
type PostService struct {
	users   repositories.UserRepository
	friends repositories.FriendshipRepository
	posts   repositories.PostRepository
	locks   locker.Locker
	media   media.Generator
	events  events.Publisher
	now     func() time.Time
	log     *logger.Logger
}

func NewPostService(
	users repositories.UserRepository,
	friends repositories.FriendshipRepository,
	posts repositories.PostRepository,
	locks locker.Locker,
	gen media.Generator,
	pub events.Publisher,
) *PostService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &PostService{
		users:   users,
		friends: friends,
		posts:   posts,
		locks:   locks,
		media:   gen,
		events:  pub,
		now:     time.Now,
		log:     logger.New("services/posts"),
	}
}

// SetClock replaces the time source used for timestamps and quota windows.
func (s *PostService) SetClock(now func() time.Time) {
	s.now = now
}

// CreatePost checks the quota and stores the post while holding the
// author's quota lock, so two concurrent requests cannot both use the last
// slot.
func (s *PostService) CreatePost(ctx context.Context, userID, caption string) (*models.Post, error) {
	release, err := s.locks.Lock(ctx, "quota:"+userID)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now()
	friendCount, postsToday, err := s.counts(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	decision := policy.Evaluate(friendCount, postsToday)
	if !decision.Allowed {
		s.log.Info("post denied", logger.Fields{"userId": userID, "reason": decision.Reason})
		return nil, fmt.Errorf("%w: %s", ErrQuotaExceeded, decision.Reason)
	}

	post := &models.Post{
		AuthorID:  userID,
		Caption:   caption,
		MediaURL:  s.media.NewMediaURL(),
		CreatedAt: now,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		s.log.Error("create post failed", err, logger.Fields{"userId": userID})
		return nil, err
	}

	s.publish(ctx, events.PostCreated, post.ID.Hex(), userID)
	return post, nil
}

func (s *PostService) counts(ctx context.Context, userID string, now time.Time) (friendCount, postsToday int, err error) {
	friends, err := s.friends.CountFriends(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	start, end := policy.Window(now)
	posts, err := s.posts.CountPostsByAuthorBetween(ctx, userID, start, end)
	if err != nil {
		return 0, 0, err
	}
	return int(friends), int(posts), nil
}

// GetStatus reports the user's friend count and posts left today.
func (s *PostService) GetStatus(ctx context.Context, userID string) (*UserStatus, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	friendCount, postsToday, err := s.counts(ctx, userID, s.now())
	if err != nil {
		return nil, err
	}
	return &UserStatus{
		Name:        user.Name,
		FriendCount: friendCount,
		Remaining:   policy.RemainingPosts(friendCount, postsToday),
	}, nil
}

// ListFeed returns every post, newest first, with the author's current name.
func (s *PostService) ListFeed(ctx context.Context) ([]models.FeedPost, error) {
	posts, err := s.posts.GetAllPosts(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(posts))
	seen := make(map[string]bool, len(posts))
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			ids = append(ids, p.AuthorID)
		}
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	feed := make([]models.FeedPost, 0, len(posts))
	for _, p := range posts {
		fp := models.FeedPost{Post: p}
		if name, ok := names[p.AuthorID]; ok {
			fp.AuthorName = &name
		}
		feed = append(feed, fp)
	}
	return feed, nil
}

// ToggleLike adds userID to the post's likes, or removes it if present.
func (s *PostService) ToggleLike(ctx context.Context, postID, userID string) (*LikeResult, error) {
	post, err := s.posts.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	res := &LikeResult{Liked: policy.HasLiked(post.Likes, userID), Likes: len(post.Likes)}

	evt := events.PostUnliked
	if res.Liked {
		evt = events.PostLiked
	}
	s.publish(ctx, evt, postID, userID)
	return res, nil
}

// AddComment appends a comment. An empty userName is stored as "User".
func (s *PostService) AddComment(ctx context.Context, postID, userName, text string) error {
	if userName == "" {
		userName = defaultCommenter
	}
	comment := models.Comment{UserName: userName, Text: text, CreatedAt: s.now()}
	if err := s.posts.AddComment(ctx, postID, comment); err != nil {
		return err
	}
	s.publish(ctx, events.PostCommented, postID, "")
	return nil
}

// DeletePost removes a post with its likes and comments. Deleting a post
// that does not exist succeeds.
func (s *PostService) DeletePost(ctx context.Context, postID string) error {
	err := s.posts.DeletePost(ctx, postID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.log.Error("delete post failed", err, logger.Fields{"postId": postID})
		return err
	}
	s.publish(ctx, events.PostDeleted, postID, "")
	return nil
}

func (s *PostService) publish(ctx context.Context, typ, postID, userID string) {
	evt := events.Event{Type: typ, PostID: postID, UserID: userID, At: s.now()}
	if err := s.events.Publish(ctx, evt); err != nil {
		s.log.Warn("event not published", logger.Fields{"type": typ, "postId": postID, "error": err.Error()})
	}
}
