package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/api/dto"
	"github.com/soportek/helpdesk-service/internal/service"
	"github.com/soportek/helpdesk-service/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Token handles POST /token. The payload is form-encoded with the email in
// the username field, OAuth2 password-grant style.
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return util.NewValidationError("username and password required", nil)
	}

	user, err := h.auth.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return err
	}

	token, _, err := h.auth.IssueToken(user)
	if err != nil {
		return util.NewInternalError(err)
	}

	return c.Status(http.StatusOK).JSON(dto.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
