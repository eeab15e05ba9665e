package models

import "time"

// NotificationType is the interaction kind that produced a notification
type NotificationType string

const (
	NotificationFollow NotificationType = "follow"
	NotificationLike   NotificationType = "like"
	NotificationRepost NotificationType = "repost"
	NotificationReply  NotificationType = "reply"
	NotificationQuote  NotificationType = "quote"
)

// Notification represents a profile notification produced by an interaction.
// Never created for self-interactions.
type Notification struct {
	ID              uint             `json:"id" gorm:"primaryKey"`
	Type            NotificationType `json:"type" gorm:"size:10;index"`
	ActorProfileID  uint             `json:"actor_profile_id" gorm:"index"`
	TargetProfileID uint             `json:"target_profile_id" gorm:"index"`
	PostID          *uint            `json:"post_id,omitempty"`
	IsRead          bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt       time.Time        `json:"created_at" gorm:"index"`
}

// MarkNotificationsReadRequest defines the request body for bulk mark-as-read.
// An empty id set marks every unread notification of the caller.
type MarkNotificationsReadRequest struct {
	IDs []uint `json:"ids,omitempty"`
}
