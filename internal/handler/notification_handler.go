package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"pelada-hub/internal/middleware"
	"pelada-hub/internal/service/notification"
)

type NotificationHandler struct {
	notificationService notification.Service
}

func NewNotificationHandler(notificationService notification.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)
	params := getPaginationParams(c)
	unreadOnly := c.Query("unread_only") == "true"

	result, err := h.notificationService.List(c.Context(), userID, unreadOnly, params)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	count, err := h.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"unread_count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.BadRequest("Invalid notification ID")
	}
	userID := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAsRead(c.Context(), id, userID); err != nil {
		if errors.Is(err, notification.ErrNotificationNotFound) {
			return middleware.NotFound("Notification not found")
		}
		if errors.Is(err, notification.ErrNotRecipient) {
			return middleware.Forbidden("Notification belongs to another user")
		}
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	if err := h.notificationService.MarkAllAsRead(c.Context(), userID); err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "All notifications marked as read"})
}
