package models

import "time"

// Message is a directed edge between two users. Only the read flag mutates
// after creation, and only the recipient may flip it.
type Message struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FromUserID uint      `json:"from_user_id" gorm:"index"`
	ToUserID   uint      `json:"to_user_id" gorm:"index"`
	Content    string    `json:"content" gorm:"size:1000"`
	Read       bool      `json:"read" gorm:"default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"index"`
}

// CreateMessageRequest defines the request body for sending a message
type CreateMessageRequest struct {
	ToUserID uint   `json:"to_user_id" validate:"required"`
	Content  string `json:"content" validate:"required,min=1,max=1000"`
}

// ConversationSummary is one entry in the grouped conversation list: the
// correspondent, the most recent message exchanged with them, and how many
// of their messages the viewer has not read yet.
type ConversationSummary struct {
	Partner     UserCompact `json:"partner"`
	LastMessage Message     `json:"last_message"`
	UnreadCount int         `json:"unread_count"`
}
