package models

import "time"

// Post represents a social media post. RepliedPostID and QuotedPostID are
// independent optional references into the same table.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"user_id" gorm:"index"`
	ProfileID     uint      `json:"profile_id" gorm:"index"`
	Content       string    `json:"content" gorm:"size:300"`
	RepliedPostID *uint     `json:"replied_post_id,omitempty" gorm:"index"`
	QuotedPostID  *uint     `json:"quoted_post_id,omitempty" gorm:"index"`
	RepliedPost   *Post     `json:"-" gorm:"foreignKey:RepliedPostID;constraint:OnDelete:SET NULL"`
	QuotedPost    *Post     `json:"-" gorm:"foreignKey:QuotedPostID;constraint:OnDelete:SET NULL"`
	Profile       Profile   `json:"-" gorm:"foreignKey:ProfileID"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PostWithCounts is a post annotated with per-row aggregate counts computed
// by correlated subqueries in the same statement.
type PostWithCounts struct {
	Post
	RepliesCount int64 `json:"replies_count"`
	QuotesCount  int64 `json:"quotes_count"`
	LikesCount   int64 `json:"likes_count"`
	RepostsCount int64 `json:"reposts_count"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content       string `json:"content" validate:"required,min=1,max=300"`
	ReplyToPostID *uint  `json:"reply_to_post_id,omitempty"`
	QuoteToPostID *uint  `json:"quote_to_post_id,omitempty"`
}
