package repositories

import (
	"errors"
	"time"

	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// ErrInteractionNotFound is returned when a delete targets a missing edge
var ErrInteractionNotFound = errors.New("interaction not found")

// RelatedProfile is one row of a relationship listing: the opposite profile
// joined to the edge. InteractionID is the keyset cursor for the listing.
type RelatedProfile struct {
	InteractionID uint      `json:"interaction_id"`
	ProfileID     uint      `json:"profile_id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// InteractionRepository is the Relationship Store: directed follow/mute/block
// edges between profiles.
type InteractionRepository interface {
	CreateInteraction(interaction *models.ProfileInteraction) error
	GetInteraction(sourceID, targetID uint, interactionType models.ProfileInteractionType) (*models.ProfileInteraction, error)
	DeleteInteraction(sourceID, targetID uint, interactionType models.ProfileInteractionType) error
	HasInteraction(sourceID, targetID uint, interactionType models.ProfileInteractionType) (bool, error)
	DeleteFollowsBetween(profileA, profileB uint) error
	ListBySource(sourceID uint, interactionType models.ProfileInteractionType, cursor uint, limit int) ([]RelatedProfile, error)
	ListByTarget(targetID uint, interactionType models.ProfileInteractionType, cursor uint, limit int) ([]RelatedProfile, error)
}

// PostgresInteractionRepository implements InteractionRepository for PostgreSQL
type PostgresInteractionRepository struct {
	db *gorm.DB
}

// NewPostgresInteractionRepository creates a new PostgresInteractionRepository
func NewPostgresInteractionRepository(db *gorm.DB) *PostgresInteractionRepository {
	return &PostgresInteractionRepository{db: db}
}

func (r *PostgresInteractionRepository) CreateInteraction(interaction *models.ProfileInteraction) error {
	return r.db.Create(interaction).Error
}

func (r *PostgresInteractionRepository) GetInteraction(sourceID, targetID uint, interactionType models.ProfileInteractionType) (*models.ProfileInteraction, error) {
	var interaction models.ProfileInteraction
	err := r.db.Where("source_profile_id = ? AND target_profile_id = ? AND type = ?",
		sourceID, targetID, interactionType).First(&interaction).Error
	if err != nil {
		return nil, err
	}
	return &interaction, nil
}

func (r *PostgresInteractionRepository) DeleteInteraction(sourceID, targetID uint, interactionType models.ProfileInteractionType) error {
	res := r.db.Where("source_profile_id = ? AND target_profile_id = ? AND type = ?",
		sourceID, targetID, interactionType).Delete(&models.ProfileInteraction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrInteractionNotFound
	}
	return nil
}

func (r *PostgresInteractionRepository) HasInteraction(sourceID, targetID uint, interactionType models.ProfileInteractionType) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProfileInteraction{}).
		Where("source_profile_id = ? AND target_profile_id = ? AND type = ?", sourceID, targetID, interactionType).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteFollowsBetween removes follow edges between two profiles in both
// directions. Deleting zero rows is not an error here.
func (r *PostgresInteractionRepository) DeleteFollowsBetween(profileA, profileB uint) error {
	return r.db.Where(
		"type = ? AND ((source_profile_id = ? AND target_profile_id = ?) OR (source_profile_id = ? AND target_profile_id = ?))",
		models.InteractionFollow, profileA, profileB, profileB, profileA,
	).Delete(&models.ProfileInteraction{}).Error
}

// ListBySource lists the profiles a source profile has an edge to
// (following/blocked/muted listings), newest edge first.
func (r *PostgresInteractionRepository) ListBySource(sourceID uint, interactionType models.ProfileInteractionType, cursor uint, limit int) ([]RelatedProfile, error) {
	q := r.db.Table("profile_interactions").
		Select("profile_interactions.id AS interaction_id, profiles.id AS profile_id, profiles.username, profiles.display_name, profile_interactions.created_at").
		Joins("JOIN profiles ON profiles.id = profile_interactions.target_profile_id").
		Where("profile_interactions.source_profile_id = ? AND profile_interactions.type = ?", sourceID, interactionType)
	if cursor > 0 {
		q = q.Where("profile_interactions.id < ?", cursor)
	}
	var rows []RelatedProfile
	err := q.Order("profile_interactions.id DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}

// ListByTarget lists the profiles holding an edge to a target profile
// (followers listing), newest edge first.
func (r *PostgresInteractionRepository) ListByTarget(targetID uint, interactionType models.ProfileInteractionType, cursor uint, limit int) ([]RelatedProfile, error) {
	q := r.db.Table("profile_interactions").
		Select("profile_interactions.id AS interaction_id, profiles.id AS profile_id, profiles.username, profiles.display_name, profile_interactions.created_at").
		Joins("JOIN profiles ON profiles.id = profile_interactions.source_profile_id").
		Where("profile_interactions.target_profile_id = ? AND profile_interactions.type = ?", targetID, interactionType)
	if cursor > 0 {
		q = q.Where("profile_interactions.id < ?", cursor)
	}
	var rows []RelatedProfile
	err := q.Order("profile_interactions.id DESC").Limit(limit).Scan(&rows).Error
	return rows, err
}
