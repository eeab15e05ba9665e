package models

import "time"

// ProfileInteractionType is the kind of a directed profile-to-profile edge
type ProfileInteractionType string

const (
	InteractionFollow ProfileInteractionType = "follow"
	InteractionMute   ProfileInteractionType = "mute"
	InteractionBlock  ProfileInteractionType = "block"
)

// ProfileInteraction represents a directed, typed edge between two profiles.
// The composite unique index is the correctness-critical guard against
// duplicate edges; the handler-level existence checks are advisory only.
type ProfileInteraction struct {
	ID              uint                   `json:"id" gorm:"primaryKey"`
	SourceProfileID uint                   `json:"source_profile_id" gorm:"index;uniqueIndex:idx_source_target_type"`
	TargetProfileID uint                   `json:"target_profile_id" gorm:"index;uniqueIndex:idx_source_target_type"`
	Type            ProfileInteractionType `json:"type" gorm:"size:10;uniqueIndex:idx_source_target_type"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}
