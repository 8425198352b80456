package models

import "time"

// Decision is a recorded meeting outcome. Decisions are immutable after
// creation; action items reference them through DecisionID only.
type Decision struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Source      string    `gorm:"type:varchar(50);not null;default:'meeting'" json:"source"`
	Team        *string   `gorm:"type:varchar(100)" json:"team"`
	CreatedAt   time.Time `json:"created_at"`
}
