package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUserWithProfile(user *models.User, profile *models.Profile) error
	GetUserByEmailOrPhone(identifier string) (*models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUserWithProfile creates the user and its profile in one transaction.
// Both inserts commit or neither does.
func (r *PostgresUserRepository) CreateUserWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		return tx.Create(profile).Error
	})
}

// GetUserByEmailOrPhone retrieves a user by email or phone number
func (r *PostgresUserRepository) GetUserByEmailOrPhone(identifier string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? OR phone = ?", identifier, identifier).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
