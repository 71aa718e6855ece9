package models

import "time"

// TagNameMaxLen bounds tag names; over-length names fail validation per-name
// instead of being truncated.
const TagNameMaxLen = 10

// Tag is a global vocabulary entry shared by posts and users. Name carries
// the first writer's casing; lookups are case-insensitive.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:50;uniqueIndex"`
	CreatedAt time.Time `json:"-"`
}

// PostTag links a tag to a post, unique per (post, tag).
type PostTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_tag"`
	TagID     uint      `json:"tag_id" gorm:"index;uniqueIndex:idx_post_tag"`
	CreatedAt time.Time `json:"-"`
}

// UserTag links a tag to a user profile, unique per (user, tag).
type UserTag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_tag"`
	TagID     uint      `json:"tag_id" gorm:"index;uniqueIndex:idx_user_tag"`
	CreatedAt time.Time `json:"-"`
}

// TagOwnerKind selects which join table a tag link lives in.
type TagOwnerKind int

const (
	TagOwnerPost TagOwnerKind = iota
	TagOwnerUser
)

// TagOwner identifies the entity a set of tags is attached to.
type TagOwner struct {
	Kind TagOwnerKind
	ID   uint
}
