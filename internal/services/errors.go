package services

import "errors"

var (
	// ErrQuotaExceeded is wrapped with the reason the quota denied the post.
	ErrQuotaExceeded      = errors.New("post quota exceeded")
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrRateLimited        = errors.New("password was reset less than 24 hours ago")
	ErrInvalidFriend      = errors.New("a user cannot befriend themselves")
	ErrInvalidToken       = errors.New("invalid firebase id token")
)
