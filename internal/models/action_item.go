package models

import "time"

// Common priority labels. Priority is stored as free text, so values outside
// this set are accepted.
const (
	PriorityUrgent = "Urgent"
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// ActionItem is a trackable task extracted from a meeting or created by hand.
// DecisionID is an advisory reference: it is never enforced and nothing
// cascades through it. Completed and CompletedAt move together; reopening an
// item clears both.
type ActionItem struct {
	ID          uint64     `gorm:"primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	DecisionID  *uint64    `gorm:"index" json:"decision_id"`
	Assignee    string     `gorm:"type:varchar(255)" json:"assignee"`
	DueDate     time.Time  `gorm:"not null" json:"due_date"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	Priority    string     `gorm:"type:varchar(20);not null;default:'Medium'" json:"priority"`
	CreatedAt   time.Time  `json:"created_at"`
}
