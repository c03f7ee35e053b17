package dto

import (
	"time"

	"github.com/soportek/helpdesk-service/internal/domain"
)

// CreateDepartmentRequest payload.
type CreateDepartmentRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DepartmentResponse payload.
type DepartmentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewDepartmentResponse maps a domain department.
func NewDepartmentResponse(dept *domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:          dept.ID,
		Name:        dept.Name,
		Description: dept.Description,
		CreatedAt:   dept.CreatedAt,
	}
}

// CategoryRequest payload for create and rename.
type CategoryRequest struct {
	Name string `json:"name"`
}

// CategoryResponse payload.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NewCategoryResponse maps a domain category.
func NewCategoryResponse(category *domain.Category) CategoryResponse {
	return CategoryResponse{ID: category.ID, Name: category.Name}
}
