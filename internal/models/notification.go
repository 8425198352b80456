package models

import "time"

type NotificationType string

const (
	NotificationActionReminder  NotificationType = "action_reminder"
	NotificationOverdueReminder NotificationType = "overdue_reminder"
	NotificationNewAssignment   NotificationType = "new_assignment"
	NotificationItemCompleted   NotificationType = "item_completed"
)

// Notification is an informational record about a system event. ActionItemID
// points at the item that triggered it, when there was one; the item may
// change or disappear afterwards without the notification being revised.
// Notifications are never deleted and only transition unread -> read.
type Notification struct {
	ID           uint64           `gorm:"primarykey" json:"id"`
	Type         NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	ActionItemID *uint64          `gorm:"index" json:"action_item_id"`
	Message      string           `gorm:"type:text;not null" json:"message"`
	Read         bool             `gorm:"not null;default:false" json:"read"`
	CreatedAt    time.Time        `json:"created_at"`
}
