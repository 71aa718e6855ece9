package models

import "time"

// Follow is a directed edge: follower receives following's posts in their
// timeline. The composite unique index arbitrates concurrent duplicate
// follows at the store.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateFollowRequest defines the request body for following a user
type CreateFollowRequest struct {
	FollowingID uint `json:"following_id" validate:"required"`
}

// FollowEdge is a follow relationship as listed for followers/following
// pages: the edge id plus the counterpart's public profile.
type FollowEdge struct {
	ID        uint        `json:"id"`
	User      UserCompact `json:"user"`
	CreatedAt time.Time   `json:"created_at"`
}
