package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/harusato/meeting-decisions-api/internal/models"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrRecordingNotFound          = errors.New("recording not found")
	ErrRecordingIDRequired        = errors.New("recording id is required")
	ErrTranscriptionNotConfigured = errors.New("transcription service is not configured")
)

// Transcriber converts an audio file into transcription text and the audio
// duration in seconds.
type Transcriber interface {
	TranscribeAudio(ctx context.Context, filePath string) (string, float64, error)
}

// RecordingService tracks uploaded recordings through the transcription
// pipeline. Status advances pending -> transcribing -> completed|failed and
// never moves backwards.
type RecordingService struct {
	recordingRepo repository.RecordingRepository
	transcriber   Transcriber
	clock         Clock
	logger        *zap.SugaredLogger
}

// NewRecordingService creates a new RecordingService. transcriber may be nil
// when transcription is not configured.
func NewRecordingService(
	recordingRepo repository.RecordingRepository,
	transcriber Transcriber,
	clock Clock,
	logger *zap.SugaredLogger,
) *RecordingService {
	return &RecordingService{
		recordingRepo: recordingRepo,
		transcriber:   transcriber,
		clock:         clock,
		logger:        logger,
	}
}

// Create registers an uploaded recording with the caller-supplied ID in
// status pending.
func (s *RecordingService) Create(id string, title *string) (*models.Recording, error) {
	if id == "" {
		return nil, ErrRecordingIDRequired
	}

	now := s.clock.Now()
	recording := &models.Recording{
		ID:        id,
		Title:     title,
		Status:    models.RecordingStatusPending,
		CreatedAt: &now,
	}
	if err := s.recordingRepo.Create(recording); err != nil {
		return nil, fmt.Errorf("failed to create recording: %w", err)
	}

	return recording, nil
}

// Get returns a recording by ID
func (s *RecordingService) Get(id string) (*models.Recording, error) {
	recording, err := s.recordingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordingNotFound
		}
		return nil, fmt.Errorf("failed to find recording: %w", err)
	}
	return recording, nil
}

// List returns recordings, newest first
func (s *RecordingService) List(limit int) ([]models.Recording, error) {
	recordings, err := s.recordingRepo.List(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recordings: %w", err)
	}
	return recordings, nil
}

// Transcribe runs the audio file at audioPath through Whisper and stores the
// result on the recording. The recording ends in status completed with its
// transcription and duration, or failed.
func (s *RecordingService) Transcribe(ctx context.Context, id, audioPath string) error {
	if s.transcriber == nil {
		return ErrTranscriptionNotConfigured
	}

	recording, err := s.recordingRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecordingNotFound
		}
		return fmt.Errorf("failed to find recording: %w", err)
	}

	recording.Status = models.RecordingStatusTranscribing
	if err := s.recordingRepo.Update(recording); err != nil {
		return fmt.Errorf("failed to mark recording transcribing: %w", err)
	}

	text, duration, err := s.transcriber.TranscribeAudio(ctx, audioPath)
	if err != nil {
		s.logger.Errorw("transcription failed", "recording_id", id, "error", err)
		recording.Status = models.RecordingStatusFailed
		if updateErr := s.recordingRepo.Update(recording); updateErr != nil {
			s.logger.Errorw("failed to mark recording failed", "recording_id", id, "error", updateErr)
		}
		return fmt.Errorf("failed to transcribe recording: %w", err)
	}

	recording.Status = models.RecordingStatusCompleted
	recording.Transcription = &text
	recording.Duration = &duration
	if err := s.recordingRepo.Update(recording); err != nil {
		return fmt.Errorf("failed to store transcription: %w", err)
	}

	return nil
}
