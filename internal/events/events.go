// Package events announces post lifecycle changes to downstream consumers.
package events

import (
	"context"
	"time"
)

const (
	PostCreated   = "post.created"
	PostDeleted   = "post.deleted"
	PostLiked     = "post.liked"
	PostUnliked   = "post.unliked"
	PostCommented = "post.commented"
)

type Event struct {
	Type   string    `json:"type"`
	PostID string    `json:"postId"`
	UserID string    `json:"userId,omitempty"`
	At     time.Time `json:"at"`
}

// Publisher delivers events. Callers treat delivery as best effort.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}

// Noop drops every event. Used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }
