package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/api/dto"
	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// CategoriesHandler exposes category and association endpoints.
type CategoriesHandler struct {
	directory *service.DirectoryService
}

// NewCategoriesHandler constructs handler.
func NewCategoriesHandler(directory *service.DirectoryService) *CategoriesHandler {
	return &CategoriesHandler{directory: directory}
}

// List handles GET /categorias/.
func (h *CategoriesHandler) List(c *fiber.Ctx) error {
	categories, err := h.directory.ListCategories(c.Context(), parsePage(c))
	if err != nil {
		return err
	}
	items := make([]dto.CategoryResponse, 0, len(categories))
	for i := range categories {
		items = append(items, dto.NewCategoryResponse(&categories[i]))
	}
	return c.JSON(items)
}

// Get handles GET /categorias/:id.
func (h *CategoriesHandler) Get(c *fiber.Ctx) error {
	category, err := h.directory.GetCategory(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// Create handles POST /categorias/ (administrator only, enforced on the route).
func (h *CategoriesHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return util.NewValidationError("name required", nil)
	}

	category, err := h.directory.CreateCategory(c.Context(), req.Name)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCategoryResponse(category))
}

// Update handles PUT /categorias/:id (administrator only).
func (h *CategoriesHandler) Update(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" {
		return util.NewValidationError("name required", nil)
	}

	category, err := h.directory.UpdateCategory(c.Context(), c.Params("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCategoryResponse(category))
}

// Delete handles DELETE /categorias/:id (administrator only).
func (h *CategoriesHandler) Delete(c *fiber.Ctx) error {
	if err := h.directory.DeleteCategory(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ListDepartments handles GET /categorias/:id/departamentos/.
func (h *CategoriesHandler) ListDepartments(c *fiber.Ctx) error {
	departments, err := h.directory.ListCategoryDepartments(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		items = append(items, dto.NewDepartmentResponse(&departments[i]))
	}
	return c.JSON(items)
}

// AssignDepartment handles POST /categorias/:id/departamentos/:departmentID.
// Repeating an existing association answers with an informational message
// instead of an error.
func (h *CategoriesHandler) AssignDepartment(c *fiber.Ctx) error {
	added, err := h.directory.AssignCategoryToDepartment(c.Context(), c.Params("id"), c.Params("departmentID"))
	if err != nil {
		return err
	}
	if !added {
		return c.JSON(fiber.Map{"message": "category already assigned to department"})
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"message": "category assigned to department"})
}

// RemoveDepartment handles DELETE /categorias/:id/departamentos/:departmentID.
func (h *CategoriesHandler) RemoveDepartment(c *fiber.Ctx) error {
	removed, err := h.directory.RemoveCategoryFromDepartment(c.Context(), c.Params("id"), c.Params("departmentID"))
	if err != nil {
		return err
	}
	if !removed {
		return c.JSON(fiber.Map{"message": "category was not assigned to department"})
	}
	return c.JSON(fiber.Map{"message": "category removed from department"})
}
