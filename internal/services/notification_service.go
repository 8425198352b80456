package services

import (
	"errors"
	"fmt"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService exposes the notification feed: listing, unread count
// and the one-way unread -> read transition.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns notifications matching the filter, newest first
func (s *NotificationService) List(filter repository.NotificationFilter) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.List(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// CountUnread returns how many notifications have not been marked read
func (s *NotificationService) CountUnread() (int64, error) {
	count, err := s.notificationRepo.CountUnread()
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marks a notification as read. There is no way back to unread.
func (s *NotificationService) MarkRead(id uint64) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}

	if notification.Read {
		return notification, nil
	}

	notification.Read = true
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, fmt.Errorf("failed to mark notification read: %w", err)
	}

	return notification, nil
}
