package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/harusato/meeting-decisions-api/internal/errors"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

// StatsHandler serves the dashboard summary.
type StatsHandler struct {
	statsService *services.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService *services.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats returns current dashboard counts.
func (h *StatsHandler) GetStats(c *gin.Context) {
	stats, err := h.statsService.Stats()
	if err != nil {
		apierrors.InternalError(c, "Failed to compute stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}
