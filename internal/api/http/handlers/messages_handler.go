package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/api/dto"
	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// MessagesHandler exposes private message endpoints.
type MessagesHandler struct {
	messages *service.MessageService
}

// NewMessagesHandler constructs handler.
func NewMessagesHandler(messageService *service.MessageService) *MessagesHandler {
	return &MessagesHandler{messages: messageService}
}

// Create handles POST /mensajes/.
func (h *MessagesHandler) Create(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	msg, err := h.messages.Create(c.Context(), principal, req.Body)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewMessageResponse(msg))
}

// List handles GET /mensajes/.
func (h *MessagesHandler) List(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	msgs, err := h.messages.List(c.Context(), principal, parsePage(c))
	if err != nil {
		return err
	}
	items := make([]dto.MessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewMessageResponse(&msgs[i]))
	}
	return c.JSON(items)
}

// Get handles GET /mensajes/:id.
func (h *MessagesHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	msg, err := h.messages.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMessageResponse(msg))
}

// Update handles PUT /mensajes/:id.
func (h *MessagesHandler) Update(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	var req dto.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	msg, err := h.messages.Update(c.Context(), principal, c.Params("id"), req.Body)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewMessageResponse(msg))
}

// Delete handles DELETE /mensajes/:id.
func (h *MessagesHandler) Delete(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.messages.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
