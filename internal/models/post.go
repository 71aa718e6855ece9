package models

import "time"

// Post belongs to exactly one author. The author never changes after
// creation; updates touch title and content only.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:50"`
	Content   string    `json:"content" gorm:"type:text"`
	UserID    uint      `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title   string    `json:"title" validate:"required,max=50"`
	Content string    `json:"content" validate:"required,max=10000"`
	Tags    *[]string `json:"tags,omitempty"`
}

// UpdatePostRequest defines the request body for updating an existing post
type UpdatePostRequest struct {
	Title   string    `json:"title,omitempty" validate:"omitempty,max=50"`
	Content string    `json:"content,omitempty" validate:"omitempty,max=10000"`
	Tags    *[]string `json:"tags,omitempty"`
}

// EnrichedPost is a post carrying its author profile, like edges and tags,
// as served by the timeline and post detail endpoints.
type EnrichedPost struct {
	Post
	Author UserCompact `json:"author"`
	Likes  []Like      `json:"likes"`
	Tags   []Tag       `json:"tags"`
}
