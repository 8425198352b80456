package repository

import (
	"time"

	"github.com/harusato/meeting-decisions-api/internal/models"
)

// ActionItemFilter holds filtering options for listing action items. All set
// predicates are applied conjunctively.
type ActionItemFilter struct {
	Completed  *bool
	DecisionID *uint64
	Limit      int
}

// NotificationFilter holds filtering options for listing notifications.
type NotificationFilter struct {
	Read  *bool
	Limit int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}

// DecisionRepository defines the interface for decision data access.
// Decisions are immutable once stored: there is no update or delete.
type DecisionRepository interface {
	// Create creates a new decision
	Create(decision *models.Decision) error

	// FindByID finds a decision by ID
	FindByID(id uint64) (*models.Decision, error)

	// List retrieves decisions, newest first, truncated to limit when positive
	List(limit int) ([]models.Decision, error)

	// Count returns the total number of decisions
	Count() (int64, error)
}

// ActionItemRepository defines the interface for action item data access
type ActionItemRepository interface {
	// Create creates a new action item
	Create(item *models.ActionItem) error

	// FindByID finds an action item by ID
	FindByID(id uint64) (*models.ActionItem, error)

	// List retrieves action items in ascending due-date order
	List(filter ActionItemFilter) ([]models.ActionItem, error)

	// Update persists changes to an action item
	Update(item *models.ActionItem) error

	// ListOverdue returns incomplete items whose due date is strictly before now
	ListOverdue(now time.Time) ([]models.ActionItem, error)

	// CountByCompletion counts items by completion state
	CountByCompletion(completed bool) (int64, error)
}

// NotificationRepository defines the interface for notification data access.
// Notifications are never deleted; the only mutation is marking one read.
type NotificationRepository interface {
	// Create creates a new notification
	Create(notification *models.Notification) error

	// FindByID finds a notification by ID
	FindByID(id uint64) (*models.Notification, error)

	// List retrieves notifications, newest first, truncated to limit when positive
	List(filter NotificationFilter) ([]models.Notification, error)

	// Update persists changes to a notification
	Update(notification *models.Notification) error

	// CountUnread counts notifications that have not been marked read
	CountUnread() (int64, error)
}

// RecordingRepository defines the interface for recording data access.
// Recording IDs are supplied by the caller rather than generated here.
type RecordingRepository interface {
	// Create stores a new recording
	Create(recording *models.Recording) error

	// FindByID finds a recording by its external ID
	FindByID(id string) (*models.Recording, error)

	// List retrieves recordings, newest first; rows without a creation time sort last
	List(limit int) ([]models.Recording, error)

	// Update persists changes to a recording
	Update(recording *models.Recording) error
}
