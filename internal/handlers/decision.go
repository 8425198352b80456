package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/harusato/meeting-decisions-api/internal/errors"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

// DecisionHandler exposes stored decisions.
type DecisionHandler struct {
	decisionService *services.DecisionService
}

// NewDecisionHandler creates a new DecisionHandler.
func NewDecisionHandler(decisionService *services.DecisionService) *DecisionHandler {
	return &DecisionHandler{decisionService: decisionService}
}

// ListDecisions returns decisions, newest first.
func (h *DecisionHandler) ListDecisions(c *gin.Context) {
	decisions, err := h.decisionService.List(parseLimit(c))
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch decisions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"decisions": decisions})
}

// GetDecision returns a single decision by ID.
func (h *DecisionHandler) GetDecision(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid decision id")
		return
	}

	decision, err := h.decisionService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrDecisionNotFound) {
			apierrors.NotFound(c, "Decision not found")
			return
		}
		apierrors.InternalError(c, "Failed to fetch decision")
		return
	}

	c.JSON(http.StatusOK, decision)
}
