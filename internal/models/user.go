package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is stored in PostgreSQL. Credential fields are optional: the seed
// user and firebase-created users may have no password. Non-empty emails
// are unique.
type User struct {
	ID                string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name              string     `json:"name"`
	Email             string     `json:"email,omitempty" gorm:"uniqueIndex:idx_users_email_unique,where:email <> ''"`
	Phone             string     `json:"phone,omitempty" gorm:"index"`
	Password          string     `json:"-"` // bcrypt hash
	FirebaseUID       string     `json:"-" gorm:"index"`
	LastPasswordReset *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"-"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"omitempty,max=20"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordRequest identifies the account by email or phone.
type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required"`
}

type FirebaseLoginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

// AuthResponse is returned by register, login and firebase login.
type AuthResponse struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Token  string `json:"token,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
	jwt.RegisteredClaims
}
