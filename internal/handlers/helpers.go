package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/harusato/meeting-decisions-api/internal/constants"
)

// parseLimit reads the optional limit query parameter, clamped to MaxListLimit.
// Zero means no limit.
func parseLimit(c *gin.Context) int {
	raw := c.Query("limit")
	if raw == "" {
		return 0
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		return 0
	}
	if limit > constants.MaxListLimit {
		return constants.MaxListLimit
	}
	return limit
}

// parseIDParam reads a numeric id path parameter.
func parseIDParam(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
