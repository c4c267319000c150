package models

import "time"

// Friendship is one friend reference held by a user. Only the count of a
// user's rows feeds the post quota; FriendID does not have to resolve to a
// registered user.
type Friendship struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);index;uniqueIndex:idx_user_friend"`
	FriendID  string    `json:"friendId" gorm:"type:varchar(64);uniqueIndex:idx_user_friend"`
	CreatedAt time.Time `json:"createdAt"`
}

type AddFriendRequest struct {
	FriendID string `json:"friendId" validate:"required,max=64"`
}
