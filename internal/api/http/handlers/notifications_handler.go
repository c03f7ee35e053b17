package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// NotificationsHandler exposes the per-user notification feed.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notificationService *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notificationService}
}

// List handles GET /notifications/ for the authenticated user.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	feed, err := h.notifications.Feed(c.Context(), principal.ID, int64(c.QueryInt("limit", 0)))
	if err != nil {
		return util.NewInternalError(err)
	}
	return c.JSON(feed)
}
