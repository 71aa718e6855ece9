package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account holder. Name is globally unique; the (email, provider)
// pair is unique so the same address can exist once per OAuth provider and
// once for local signup.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name" gorm:"size:32;uniqueIndex"`
	Email          string    `json:"email" gorm:"size:255;uniqueIndex:idx_email_provider"`
	Provider       string    `json:"provider" gorm:"size:32;uniqueIndex:idx_email_provider"`
	PasswordDigest string    `json:"-"`
	Image          string    `json:"image,omitempty"`
	Bio            string    `json:"bio,omitempty" gorm:"size:200"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ProviderLocal marks users registered with email and password.
const ProviderLocal = "local"

// UserCompact is the public profile shape embedded in feeds, follow listings
// and conversation summaries.
type UserCompact struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Image    string `json:"image,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// ToCompact strips the user down to its public profile fields.
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:       u.ID,
		Name:     u.Name,
		Image:    u.Image,
		Provider: u.Provider,
	}
}

type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=32"`
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OAuthLoginRequest carries the provider ID token obtained by the client.
type OAuthLoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateUserRequest updates profile fields. Tags is a pointer so an absent
// field leaves tag links untouched while an explicit empty list clears them.
type UpdateUserRequest struct {
	Name  string    `json:"name,omitempty" validate:"omitempty,min=2,max=32"`
	Bio   string    `json:"bio,omitempty" validate:"omitempty,max=200"`
	Image string    `json:"image,omitempty" validate:"omitempty,url"`
	Tags  *[]string `json:"tags,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
