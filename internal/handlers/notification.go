package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/harusato/meeting-decisions-api/internal/errors"
	"github.com/harusato/meeting-decisions-api/internal/repository"
	"github.com/harusato/meeting-decisions-api/internal/services"
)

// NotificationHandler exposes the notification feed.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// ListNotifications returns notifications, newest first.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	filter := repository.NotificationFilter{Limit: parseLimit(c)}

	if raw := c.Query("read"); raw != "" {
		read, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid read filter")
			return
		}
		filter.Read = &read
	}

	notifications, err := h.notificationService.List(filter)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadCount returns how many notifications are unread.
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notificationService.CountUnread()
	if err != nil {
		apierrors.InternalError(c, "Failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

// MarkRead marks a notification as read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid notification id")
		return
	}

	notification, err := h.notificationService.MarkRead(id)
	if err != nil {
		if errors.Is(err, services.ErrNotificationNotFound) {
			apierrors.NotFound(c, "Notification not found")
			return
		}
		apierrors.InternalError(c, "Failed to mark notification read")
		return
	}

	c.JSON(http.StatusOK, notification)
}
