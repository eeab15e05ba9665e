package models

import "time"

// PostInteractionType is the kind of a profile-to-post edge
type PostInteractionType string

const (
	InteractionLike   PostInteractionType = "like"
	InteractionRepost PostInteractionType = "repost"
)

// PostInteraction represents a like or repost of a post by a profile.
// At most one edge per (profile, post, type), enforced by the unique index.
type PostInteraction struct {
	ID        uint                `json:"id" gorm:"primaryKey"`
	UserID    uint                `json:"user_id" gorm:"index"`
	ProfileID uint                `json:"profile_id" gorm:"index;uniqueIndex:idx_profile_post_type"`
	PostID    uint                `json:"post_id" gorm:"index;uniqueIndex:idx_profile_post_type"`
	Type      PostInteractionType `json:"type" gorm:"size:10;uniqueIndex:idx_profile_post_type"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}
