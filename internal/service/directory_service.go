package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// DirectoryService manages departments, categories and their associations.
type DirectoryService struct {
	departments repository.DepartmentRepository
	categories  repository.CategoryRepository
}

// NewDirectoryService builds the service.
func NewDirectoryService(departments repository.DepartmentRepository, categories repository.CategoryRepository) *DirectoryService {
	return &DirectoryService{departments: departments, categories: categories}
}

// ListDepartments is public and paginated.
func (s *DirectoryService) ListDepartments(ctx context.Context, page repository.Page) ([]domain.Department, error) {
	departments, err := s.departments.List(ctx, page)
	if err != nil {
		return nil, persistence.MapError(err, "department")
	}
	return departments, nil
}

// CreateDepartment rejects duplicate names with a conflict.
func (s *DirectoryService) CreateDepartment(ctx context.Context, name, description string) (*domain.Department, error) {
	if _, err := s.departments.GetByName(ctx, name); err == nil {
		return nil, util.NewConflict("a department with that name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewInternalError(err)
	}

	dept := &domain.Department{Name: name, Description: description}
	if err := s.departments.Create(ctx, dept); err != nil {
		return nil, persistence.MapError(err, "department")
	}
	return dept, nil
}

// DeleteDepartment refuses to remove a department still referenced by users
// or tickets; the foreign keys surface that as a conflict.
func (s *DirectoryService) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.departments.Delete(ctx, id); err != nil {
		return persistence.MapError(err, "department")
	}
	return nil
}

// ListCategories is paginated.
func (s *DirectoryService) ListCategories(ctx context.Context, page repository.Page) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx, page)
	if err != nil {
		return nil, persistence.MapError(err, "category")
	}
	return categories, nil
}

// GetCategory fetches one category.
func (s *DirectoryService) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "category")
	}
	return category, nil
}

// CreateCategory rejects duplicate names with a conflict.
func (s *DirectoryService) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, util.NewConflict("a category with that name already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewInternalError(err)
	}

	category := &domain.Category{Name: name}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, persistence.MapError(err, "category")
	}
	return category, nil
}

// UpdateCategory renames a category.
func (s *DirectoryService) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "category")
	}
	if existing, err := s.categories.GetByName(ctx, name); err == nil && existing.ID != id {
		return nil, util.NewConflict("a category with that name already exists", nil)
	} else if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewInternalError(err)
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, persistence.MapError(err, "category")
	}
	return category, nil
}

// DeleteCategory removes a category; its department associations go with it,
// but tickets referencing it keep the repository from deleting.
func (s *DirectoryService) DeleteCategory(ctx context.Context, id string) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return persistence.MapError(err, "category")
	}
	return nil
}

// AssignCategoryToDepartment links the pair. Repeating an existing link is a
// no-op; the boolean tells the handler which informational message to return.
func (s *DirectoryService) AssignCategoryToDepartment(ctx context.Context, categoryID, departmentID string) (bool, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return false, persistence.MapError(err, "category")
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return false, persistence.MapError(err, "department")
	}

	added, err := s.categories.AssignDepartment(ctx, categoryID, departmentID)
	if err != nil {
		return false, persistence.MapError(err, "association")
	}
	return added, nil
}

// RemoveCategoryFromDepartment unlinks the pair; removing an absent link is
// a no-op.
func (s *DirectoryService) RemoveCategoryFromDepartment(ctx context.Context, categoryID, departmentID string) (bool, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return false, persistence.MapError(err, "category")
	}
	if _, err := s.departments.GetByID(ctx, departmentID); err != nil {
		return false, persistence.MapError(err, "department")
	}

	removed, err := s.categories.RemoveDepartment(ctx, categoryID, departmentID)
	if err != nil {
		return false, persistence.MapError(err, "association")
	}
	return removed, nil
}

// ListCategoryDepartments returns the departments linked to a category.
func (s *DirectoryService) ListCategoryDepartments(ctx context.Context, categoryID string) ([]domain.Department, error) {
	if _, err := s.categories.GetByID(ctx, categoryID); err != nil {
		return nil, persistence.MapError(err, "category")
	}
	departments, err := s.categories.ListDepartments(ctx, categoryID)
	if err != nil {
		return nil, persistence.MapError(err, "association")
	}
	return departments, nil
}
