package models

import "time"

// SocialProfile is an external SNS link on a user profile, unique per
// (user, provider).
type SocialProfile struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_provider_profile"`
	Provider  string    `json:"provider" gorm:"size:32;uniqueIndex:idx_user_provider_profile"`
	URL       string    `json:"url" gorm:"size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSocialProfileRequest defines the request body for adding an SNS link
type CreateSocialProfileRequest struct {
	Provider string `json:"provider" validate:"required,max=32"`
	URL      string `json:"url" validate:"omitempty,url,max=255"`
}

// UpdateSocialProfileRequest defines the request body for editing an SNS link
type UpdateSocialProfileRequest struct {
	Provider string `json:"provider,omitempty" validate:"omitempty,max=32"`
	URL      string `json:"url,omitempty" validate:"omitempty,url,max=255"`
}
