package http

import (
	"errors"
	"net/http"

	"meetapp/pkg/logger"
	"meetapp/services/notification/internal/usecase"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUseCase usecase.NotificationUseCase
	logger              *logger.Logger
}

func NewNotificationHandler(notificationUseCase usecase.NotificationUseCase, logger *logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationUseCase: notificationUseCase,
		logger:              logger,
	}
}

// ListNotifications godoc
// @Summary      List my notifications
// @Description  Most recent first. Notifications expire after 30 days.
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   entity.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	notifications, err := h.notificationUseCase.ListNotifications(userID)
	if err != nil {
		h.logger.Error("Failed to list notifications for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}

// MarkAsRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Notification ID"
// @Success      200  {object}  entity.Notification
// @Failure      404  {object}  map[string]string
// @Router       /notifications/{id} [put]
func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetString("user_id")
	notificationID := c.Param("id")

	notification, err := h.notificationUseCase.MarkAsRead(userID, notificationID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotificationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to mark notification %s as read: %v", notificationID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}

	c.JSON(http.StatusOK, notification)
}
