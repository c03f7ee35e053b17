package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/api/dto"
	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// DepartmentsHandler exposes department endpoints.
type DepartmentsHandler struct {
	directory *service.DirectoryService
}

// NewDepartmentsHandler constructs handler.
func NewDepartmentsHandler(directory *service.DirectoryService) *DepartmentsHandler {
	return &DepartmentsHandler{directory: directory}
}

// List handles GET /departments/ (public read).
func (h *DepartmentsHandler) List(c *fiber.Ctx) error {
	departments, err := h.directory.ListDepartments(c.Context(), parsePage(c))
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		items = append(items, dto.NewDepartmentResponse(&departments[i]))
	}
	return c.JSON(items)
}

// Create handles POST /departments/ (administrator only, enforced on the route).
func (h *DepartmentsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return util.NewValidationError("name required", nil)
	}

	dept, err := h.directory.CreateDepartment(c.Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewDepartmentResponse(dept))
}

// Delete handles DELETE /departments/:id (administrator only).
func (h *DepartmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.DeleteDepartment(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
