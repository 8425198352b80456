package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harusato/meeting-decisions-api/internal/dto"
	apierrors "github.com/harusato/meeting-decisions-api/internal/errors"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

// MeetingHandler drives the extraction flow over meeting text.
type MeetingHandler struct {
	decisionService *services.DecisionService
}

// NewMeetingHandler creates a new MeetingHandler.
func NewMeetingHandler(decisionService *services.DecisionService) *MeetingHandler {
	return &MeetingHandler{decisionService: decisionService}
}

// Extract runs meeting text through the AI extractor and stores the result.
func (h *MeetingHandler) Extract(c *gin.Context) {
	type ExtractRequest struct {
		Text   string  `json:"text" binding:"required"`
		Source string  `json:"source"`
		Team   *string `json:"team"`
	}

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	decision, items, err := h.decisionService.ExtractFromMeeting(c.Request.Context(), services.ExtractFromMeetingInput{
		Text:   req.Text,
		Source: req.Source,
		Team:   req.Team,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrExtractionNotConfigured):
			apierrors.ServiceUnavailable(c, "Extraction service is not configured")
		case errors.Is(err, services.ErrMeetingTextRequired),
			errors.Is(err, services.ErrNoDecisionExtracted),
			errors.Is(err, services.ErrTooManyActionItems):
			apierrors.BadRequest(c, err.Error())
		default:
			apierrors.InternalError(c, "Failed to extract decision")
		}
		return
	}

	c.JSON(http.StatusCreated, dto.ToExtractionResponse(*decision, items))
}
