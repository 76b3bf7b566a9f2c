package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bz-technologies/helpdesk/internal/service"
)

// NotificationsHandler lists recent ticket notifications.
type NotificationsHandler struct {
	notifications *service.NotificationService
}

func NewNotificationsHandler(notifications *service.NotificationService) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications}
}

// List GET /api/notifications?limit=.
func (h *NotificationsHandler) List(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.notifications.Recent(c.QueryInt("limit", 10))})
}
