package repositories

import (
	"github.com/anonto42/nano-social/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	ListByTarget(targetProfileID uint, cursor uint, limit int) ([]models.Notification, error)
	GetUnreadCount(targetProfileID uint) (int64, error)
	MarkRead(targetProfileID uint, ids []uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListByTarget lists a profile's notifications newest first, keyset on id.
func (r *postgresNotificationRepository) ListByTarget(targetProfileID uint, cursor uint, limit int) ([]models.Notification, error) {
	q := r.db.Where("target_profile_id = ?", targetProfileID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var notifications []models.Notification
	err := q.Order("id DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) GetUnreadCount(targetProfileID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("target_profile_id = ? AND is_read = ?", targetProfileID, false).
		Count(&count).Error
	return count, err
}

// MarkRead marks a profile's unread notifications as read, optionally scoped
// to an id set. An empty set marks all of them.
func (r *postgresNotificationRepository) MarkRead(targetProfileID uint, ids []uint) error {
	q := r.db.Model(&models.Notification{}).
		Where("target_profile_id = ? AND is_read = ?", targetProfileID, false)
	if len(ids) > 0 {
		q = q.Where("id IN ?", ids)
	}
	return q.Update("is_read", true).Error
}
