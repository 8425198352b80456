package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/harusato/meeting-decisions-api/internal/errors"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

// ActionItemHandler exposes action item CRUD and lifecycle endpoints.
type ActionItemHandler struct {
	itemService *services.ActionItemService
}

// NewActionItemHandler creates a new ActionItemHandler.
func NewActionItemHandler(itemService *services.ActionItemService) *ActionItemHandler {
	return &ActionItemHandler{itemService: itemService}
}

// ListActionItems returns action items, optionally filtered by completion
// state and decision.
func (h *ActionItemHandler) ListActionItems(c *gin.Context) {
	filter := repository.ActionItemFilter{Limit: parseLimit(c)}

	if raw := c.Query("completed"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid completed filter")
			return
		}
		filter.Completed = &completed
	}
	if raw := c.Query("decision_id"); raw != "" {
		decisionID, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid decision_id filter")
			return
		}
		filter.DecisionID = &decisionID
	}

	items, err := h.itemService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch action items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"action_items": items})
}

// ListOverdue returns incomplete items whose due date has passed.
func (h *ActionItemHandler) ListOverdue(c *gin.Context) {
	items, err := h.itemService.ListOverdue()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch overdue action items")
		return
	}

	c.JSON(http.StatusOK, gin.H{"action_items": items})
}

// GetActionItem returns a single action item by ID.
func (h *ActionItemHandler) GetActionItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid action item id")
		return
	}

	item, err := h.itemService.Get(id)
	if err != nil {
		respondActionItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateActionItem creates a standalone action item.
func (h *ActionItemHandler) CreateActionItem(c *gin.Context) {
	type CreateActionItemRequest struct {
		Title      string    `json:"title" binding:"required"`
		Assignee   string    `json:"assignee"`
		DueDate    time.Time `json:"due_date" binding:"required"`
		Priority   string    `json:"priority"`
		DecisionID *uint64   `json:"decision_id"`
	}

	var req CreateActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.Create(services.CreateActionItemInput{
		Title:      req.Title,
		Assignee:   req.Assignee,
		DueDate:    req.DueDate,
		Priority:   req.Priority,
		DecisionID: req.DecisionID,
	})
	if err != nil {
		respondActionItemError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateActionItem applies a partial update to an action item.
func (h *ActionItemHandler) UpdateActionItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid action item id")
		return
	}

	type UpdateActionItemRequest struct {
		Title    *string    `json:"title"`
		Assignee *string    `json:"assignee"`
		Priority *string    `json:"priority"`
		DueDate  *time.Time `json:"due_date"`
	}

	var req UpdateActionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.itemService.Update(id, services.UpdateActionItemInput{
		Title:    req.Title,
		Assignee: req.Assignee,
		Priority: req.Priority,
		DueDate:  req.DueDate,
	})
	if err != nil {
		respondActionItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CompleteActionItem marks an action item done.
func (h *ActionItemHandler) CompleteActionItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid action item id")
		return
	}

	item, err := h.itemService.Complete(id)
	if err != nil {
		respondActionItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// ReopenActionItem reverts a completed action item to pending.
func (h *ActionItemHandler) ReopenActionItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid action item id")
		return
	}

	item, err := h.itemService.Reopen(id)
	if err != nil {
		respondActionItemError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func respondActionItemError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrActionItemNotFound):
		apierrors.NotFound(c, "Action item not found")
	case errors.Is(err, services.ErrItemTitleRequired),
		errors.Is(err, services.ErrItemTitleEmpty),
		errors.Is(err, services.ErrDueDateRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
