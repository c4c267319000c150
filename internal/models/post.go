package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is an image post stored in MongoDB. Likes and comments are embedded
// and disappear with the post.
type Post struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	AuthorID  string             `json:"authorId" bson:"author_id"`
	Caption   string             `json:"caption" bson:"caption"`
	MediaURL  string             `json:"mediaUrl" bson:"media_url"`
	Likes     []string           `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"createdAt" bson:"created_at"`
}

// FeedPost is a post annotated with its author's current display name.
// AuthorName is null when the author no longer exists.
type FeedPost struct {
	Post
	AuthorName *string `json:"authorName"`
}

type CreatePostRequest struct {
	UserID  string `json:"userId" validate:"required"`
	Caption string `json:"caption" validate:"max=500"`
}

type LikeRequest struct {
	UserID string `json:"userId" validate:"required"`
}
