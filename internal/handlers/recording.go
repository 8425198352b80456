package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apierrors "github.com/harusato/meeting-decisions-api/internal/errors"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

const transcriptionTimeout = 5 * time.Minute

// RecordingHandler registers uploaded recordings and kicks off transcription.
type RecordingHandler struct {
	recordingService *services.RecordingService
	logger           *zap.SugaredLogger
}

// NewRecordingHandler creates a new RecordingHandler.
func NewRecordingHandler(recordingService *services.RecordingService, logger *zap.SugaredLogger) *RecordingHandler {
	return &RecordingHandler{
		recordingService: recordingService,
		logger:           logger,
	}
}

// CreateRecording registers an uploaded recording. The upload pipeline stores
// the audio itself; this endpoint only receives its metadata and, when an
// audio path is given, starts transcription in the background.
func (h *RecordingHandler) CreateRecording(c *gin.Context) {
	type CreateRecordingRequest struct {
		Title     *string `json:"title"`
		AudioPath string  `json:"audio_path"`
	}

	var req CreateRecordingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	recording, err := h.recordingService.Create(uuid.NewString(), req.Title)
	if err != nil {
		apierrors.InternalError(c, "Failed to create recording")
		return
	}

	if req.AudioPath != "" {
		go func(id, audioPath string) {
			ctx, cancel := context.WithTimeout(context.Background(), transcriptionTimeout)
			defer cancel()
			if err := h.recordingService.Transcribe(ctx, id, audioPath); err != nil {
				h.logger.Warnw("background transcription failed", "recording_id", id, "error", err)
			}
		}(recording.ID, req.AudioPath)
	}

	c.JSON(http.StatusCreated, recording)
}

// ListRecordings returns recordings, newest first.
func (h *RecordingHandler) ListRecordings(c *gin.Context) {
	recordings, err := h.recordingService.List(parseLimit(c))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch recordings")
		return
	}

	c.JSON(http.StatusOK, gin.H{"recordings": recordings})
}

// GetRecording returns a single recording by ID.
func (h *RecordingHandler) GetRecording(c *gin.Context) {
	recording, err := h.recordingService.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrRecordingNotFound) {
			apierrors.NotFound(c, "Recording not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch recording")
		return
	}

	c.JSON(http.StatusOK, recording)
}
