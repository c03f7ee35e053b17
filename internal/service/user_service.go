package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/config"
	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/persistence"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// UserService manages account creation and lookup.
type UserService struct {
	users       repository.UserRepository
	departments repository.DepartmentRepository
	bcryptCost  int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, departments repository.DepartmentRepository) *UserService {
	return &UserService{
		users:       users,
		departments: departments,
		bcryptCost:  cfg.Auth.BcryptCost,
	}
}

// UserCreateInput describes a new account.
type UserCreateInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.Role
	DepartmentID *string
}

// Create registers a new user. Duplicate emails are rejected with a conflict.
func (s *UserService) Create(ctx context.Context, in UserCreateInput) (*domain.User, error) {
	if !in.Role.Valid() {
		return nil, util.NewValidationError("unknown role", map[string]any{"role": in.Role})
	}

	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, util.NewConflict("email already registered", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, util.NewInternalError(err)
	}

	if in.DepartmentID != nil {
		if _, err := s.departments.GetByID(ctx, *in.DepartmentID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, util.NewValidationError("department does not exist", nil)
			}
			return nil, util.NewInternalError(err)
		}
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		DepartmentID: in.DepartmentID,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, persistence.MapError(err, "user")
	}
	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, persistence.MapError(err, "user")
	}
	return user, nil
}

// List returns a page of users. Route access is administrator-only.
func (s *UserService) List(ctx context.Context, page repository.Page) ([]domain.User, error) {
	users, err := s.users.List(ctx, page)
	if err != nil {
		return nil, persistence.MapError(err, "user")
	}
	return users, nil
}
