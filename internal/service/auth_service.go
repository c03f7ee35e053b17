package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/config"
	"github.com/soportek/helpdesk-service/internal/domain"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// AuthService coordinates credential verification and token issuance.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// Authenticate verifies an email/password pair. Unknown email and wrong
// password yield the same generic failure so accounts cannot be enumerated.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, util.NewUnauthorized("incorrect email or password")
		}
		return nil, util.NewInternalError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, util.NewUnauthorized("incorrect email or password")
	}
	return user, nil
}

// IssueToken signs an access token for the user.
func (s *AuthService) IssueToken(user *domain.User) (string, time.Time, error) {
	return s.tokenMgr.GenerateToken(user)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
