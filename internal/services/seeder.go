package services

import (
	"context"
	"time"

	"github.com/anonto42/public-space/backend/internal/logger"
	"github.com/anonto42/public-space/backend/internal/media"
	"github.com/anonto42/public-space/backend/internal/models"
	"github.com/anonto42/public-space/backend/internal/repositories"
	"github.com/google/uuid"
)

const (
	SeedUserName    = "Public Space Demo"
	SeedCaption     = "Welcome to the Public Space!"
	seedFriendCount = 2
)

// Seeder resets the stores to a single demo user with one welcome post.
type Seeder struct {
	users   repositories.UserRepository
	friends repositories.FriendshipRepository
	posts   repositories.PostRepository
	now     func() time.Time
	log     *logger.Logger
}

func NewSeeder(users repositories.UserRepository, friends repositories.FriendshipRepository, posts repositories.PostRepository) *Seeder {
	return &Seeder{
		users:   users,
		friends: friends,
		posts:   posts,
		now:     time.Now,
		log:     logger.New("services/seed"),
	}
}

// Seed wipes posts, friendships and users and returns the new seed user id.
// The seed user's friends are random references, not registered users.
func (s *Seeder) Seed(ctx context.Context) (string, error) {
	if err := s.posts.DeleteAllPosts(ctx); err != nil {
		return "", err
	}
	if err := s.friends.DeleteAllFriendships(ctx); err != nil {
		return "", err
	}
	if err := s.users.DeleteAllUsers(ctx); err != nil {
		return "", err
	}

	user := &models.User{Name: SeedUserName}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", err
	}
	for i := 0; i < seedFriendCount; i++ {
		if err := s.friends.AddFriend(ctx, user.ID, uuid.NewString()); err != nil {
			return "", err
		}
	}

	post := &models.Post{
		AuthorID:  user.ID,
		Caption:   SeedCaption,
		MediaURL:  media.WelcomeURL,
		CreatedAt: s.now(),
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return "", err
	}
	s.log.Info("store seeded", logger.Fields{"userId": user.ID})
	return user.ID, nil
}
