package repositories

import (
	"context"

	"github.com/anonto42/public-space/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendshipRepository defines the interface for friend reference operations
type FriendshipRepository interface {
	// AddFriend is idempotent: adding an existing reference is a no-op.
	AddFriend(ctx context.Context, userID, friendID string) error
	CountFriends(ctx context.Context, userID string) (int64, error)
	GetFriendIDs(ctx context.Context, userID string) ([]string, error)
	DeleteAllFriendships(ctx context.Context) error
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

func (r *PostgresFriendshipRepository) AddFriend(ctx context.Context, userID, friendID string) error {
	f := &models.Friendship{UserID: userID, FriendID: friendID}
	// The (user_id, friend_id) unique index keeps the reference set duplicate-free
	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error; err != nil {
		return storeError("add friend", err)
	}
	return nil
}

func (r *PostgresFriendshipRepository) CountFriends(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Friendship{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, storeError("count friends", err)
	}
	return count, nil
}

func (r *PostgresFriendshipRepository) GetFriendIDs(ctx context.Context, userID string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, storeError("list friends", err)
	}
	return ids, nil
}

func (r *PostgresFriendshipRepository) DeleteAllFriendships(ctx context.Context) error {
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.Friendship{}).Error; err != nil {
		return storeError("delete friendships", err)
	}
	return nil
}
