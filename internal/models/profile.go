package models

import (
	"regexp"
	"time"
)

// usernameRegex enforces 3-15 word characters.
var usernameRegex = regexp.MustCompile(`^\w{3,15}$`)

// Profile is the identity-bearing actor of the social graph, owned by exactly one User.
type Profile struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"uniqueIndex"`
	Username    string    `json:"username" gorm:"uniqueIndex;size:15"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProfileCompact is the embedded author/actor shape used in enriched responses
type ProfileCompact struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

// ToCompact converts a Profile to its compact representation
func (p *Profile) ToCompact() ProfileCompact {
	return ProfileCompact{
		ID:          p.ID,
		Username:    p.Username,
		DisplayName: p.DisplayName,
	}
}

// ValidUsername reports whether s is a legal username (3-15 word characters).
func ValidUsername(s string) bool {
	return usernameRegex.MatchString(s)
}

// UpdateProfileRequest defines the request body for updating the caller's profile
type UpdateProfileRequest struct {
	Username    string `json:"username,omitempty" validate:"omitempty,min=3,max=15"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=50"`
	Bio         string `json:"bio,omitempty" validate:"omitempty,max=160"`
}
