package handler

import (
	"errors"

	"recruitment-portal/internal/delivery/http/dto"
	"recruitment-portal/internal/delivery/http/middleware"
	"recruitment-portal/internal/pkg/response"
	noteuc "recruitment-portal/internal/usecase/notification"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc noteuc.InboxUsecase
}

func NewNotificationHandler(uc noteuc.InboxUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// List accepts ?unread=true to return unread notifications only.
func (h *NotificationHandler) List(c fiber.Ctx) error {
	unread := c.Query("unread") == "true" || c.Query("unread") == "1"
	items, err := h.uc.List(c.Context(), middleware.CallerFrom(c), unread)
	if err != nil {
		return mapNotificationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewNotificationListResponse(items))
}

func (h *NotificationHandler) MarkRead(c fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	n, err := h.uc.MarkRead(c.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return mapNotificationError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NotificationResponse{
		ID: n.ID, Message: n.Message, IsRead: n.IsRead, CreatedAt: n.CreatedAt,
	})
}

func mapNotificationError(err error) error {
	switch {
	case errors.Is(err, noteuc.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, noteuc.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, response.MessageForbidden, nil, err)
	case errors.Is(err, noteuc.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Notification not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
