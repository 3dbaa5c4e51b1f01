package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shareity/backend/internal/matcher"
	"github.com/shareity/backend/internal/models"
	"github.com/shareity/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifier *services.Notifier
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifier *services.Notifier) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/users/:id/notifications", h.GetNotifications)
	g.GET("/users/:id/notifications/unread-count", h.GetUnreadCount)
	g.POST("/notifications", h.CreateNotification)
	g.PATCH("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications returns every notification for the user, most recent first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	notifications, err := h.notifier.ListFor(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, notifications)
}

// GetUnreadCount returns the count of unread notifications
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifier.UnreadCount(c.Request().Context(), c.Param("id"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "count": count})
}

// CreateNotification stores a notification posted directly by a client
func (h *NotificationHandler) CreateNotification(c echo.Context) error {
	var req models.CreateNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	notification, err := h.notifier.Notify(c.Request().Context(), matcher.Intent{
		UserID:  req.UserID,
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		Meta:    req.Meta,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "notification": notification})
}

// MarkAsRead marks a notification as read. Unknown IDs still succeed.
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.notifier.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}
