package models

import "time"

type RecordingStatus string

const (
	RecordingStatusPending      RecordingStatus = "pending"
	RecordingStatusTranscribing RecordingStatus = "transcribing"
	RecordingStatusCompleted    RecordingStatus = "completed"
	RecordingStatusFailed       RecordingStatus = "failed"
)

// Recording is an uploaded audio asset moving through the transcription
// pipeline. The ID is supplied by the upload boundary rather than the
// database, and Status only ever advances pending -> transcribing ->
// completed|failed.
type Recording struct {
	ID            string          `gorm:"type:varchar(64);primarykey" json:"id"`
	Title         *string         `gorm:"type:varchar(255)" json:"title"`
	Transcription *string         `gorm:"type:text" json:"transcription"`
	Duration      *float64        `json:"duration"`
	Status        RecordingStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt     *time.Time      `gorm:"autoCreateTime:false" json:"created_at"`
}
