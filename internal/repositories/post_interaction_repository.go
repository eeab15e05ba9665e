package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// PostInteractionRepository is the store for like/repost edges between a
// profile and a post.
type PostInteractionRepository interface {
	CreatePostInteraction(interaction *models.PostInteraction) error
	GetPostInteraction(profileID, postID uint, interactionType models.PostInteractionType) (*models.PostInteraction, error)
	DeletePostInteraction(profileID, postID uint, interactionType models.PostInteractionType) error
	ListProfilesByPost(postID uint, interactionType models.PostInteractionType, cursor uint, limit int) ([]RelatedProfile, error)
}

// PostgresPostInteractionRepository implements PostInteractionRepository for PostgreSQL
type PostgresPostInteractionRepository struct {
	db *gorm.DB
}

// NewPostgresPostInteractionRepository creates a new PostgresPostInteractionRepository
func NewPostgresPostInteractionRepository(db *gorm.DB) *PostgresPostInteractionRepository {
	return &PostgresPostInteractionRepository{db: db}
}

func (r *PostgresPostInteractionRepository) CreatePostInteraction(interaction *models.PostInteraction) error {
	return r.db.Create(interaction).Error
}

func (r *PostgresPostInteractionRepository) GetPostInteraction(profileID, postID uint, interactionType models.PostInteractionType) (*models.PostInteraction, error) {
	var interaction models.PostInteraction
	err := r.db.Where("profile_id = ? AND post_id = ? AND type = ?",
		profileID, postID, interactionType).First(&interaction).Error
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *PostgresPostInteractionRepository) DeletePostInteraction(profileID, postID uint, interactionType models.PostInteractionType) error {
	res := r.db.Where("profile_id = ? AND post_id = ? AND type = ?",
		profileID, postID, interactionType).Delete(&models.PostInteraction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInteractionNotFound
	}
	return nil
}

// ListProfilesByPost lists the profiles that liked or reposted a post,
// newest edge first, keyset on the edge id.
func (r *PostgresPostInteractionRepository) ListProfilesByPost(postID uint, interactionType models.PostInteractionType, cursor uint, limit int) ([]RelatedProfile, error) {
	q := r.db.Table("post_interactions").
		Select("post_interactions.id AS interaction_id, profiles.id AS profile_id, profiles.username, profiles.display_name, post_interactions.created_at").
		Joins("JOIN profiles ON profiles.id = post_interactions.profile_id").
		Where("post_interactions.post_id = ? AND post_interactions.type = ?", postID, interactionType)
	if cursor > 0 {
		q = q.Where("post_interactions.id < ?", cursor)
	}
	var rows []RelatedProfile
	err := q.Order("post_interactions.id DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}
