package repository

import (
	"github.com/harusato/meeting-decisions-api/internal/models"
	"gorm.io/gorm"
)

// GormNotificationRepository is a GORM implementation of NotificationRepository
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a new notification
func (r *GormNotificationRepository) Create(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// FindByID finds a notification by ID
func (r *GormNotificationRepository) FindByID(id uint64) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// List retrieves notifications, newest first
func (r *GormNotificationRepository) List(filter NotificationFilter) ([]models.Notification, error) {
	var notifications []models.Notification

	query := r.db.Model(&models.Notification{})
	if filter.Read != nil {
		query = query.Where("read = ?", *filter.Read)
	}

	query = query.Order("created_at DESC, id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// Update persists changes to a notification
func (r *GormNotificationRepository) Update(notification *models.Notification) error {
	return r.db.Save(notification).Error
}

// CountUnread counts notifications that have not been marked read
func (r *GormNotificationRepository) CountUnread() (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("read = ?", false).
		Count(&count).Error
	return count, err
}
