package models

import "time"

// Comment is embedded in a Post, in insertion order.
type Comment struct {
	UserName  string    `json:"userName" bson:"user_name"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}

type CreateCommentRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=500"`
	UserName string `json:"userName" validate:"max=50"`
}
