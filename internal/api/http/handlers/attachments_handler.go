package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/api/dto"
	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// AttachmentsHandler exposes file attachment endpoints.
type AttachmentsHandler struct {
	attachments *service.AttachmentService
}

// NewAttachmentsHandler constructs handler.
func NewAttachmentsHandler(attachmentService *service.AttachmentService) *AttachmentsHandler {
	return &AttachmentsHandler{attachments: attachmentService}
}

// Upload handles POST /attachments/: multipart file plus a ticket_id form field.
func (h *AttachmentsHandler) Upload(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}

	ticketID := c.FormValue("ticket_id")
	if ticketID == "" {
		return util.NewValidationError("ticket_id required", nil)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return util.NewValidationError("file required", nil)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return util.NewInternalError(err)
	}
	defer src.Close()

	attachment, err := h.attachments.Upload(c.Context(), principal, ticketID, fileHeader.Filename, src)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewAttachmentResponse(attachment))
}

// ListByTicket handles GET /attachments/ticket/:id.
func (h *AttachmentsHandler) ListByTicket(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	attachments, err := h.attachments.ListByTicket(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for i := range attachments {
		items = append(items, dto.NewAttachmentResponse(&attachments[i]))
	}
	return c.JSON(items)
}

// Get handles GET /attachments/:id.
func (h *AttachmentsHandler) Get(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	attachment, err := h.attachments.Get(c.Context(), principal, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewAttachmentResponse(attachment))
}

// Delete handles DELETE /attachments/:id.
func (h *AttachmentsHandler) Delete(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.attachments.Delete(c.Context(), principal, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
