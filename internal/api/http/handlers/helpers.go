package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/auth"
	"github.com/soportek/helpdesk-service/internal/repository"
	"github.com/soportek/helpdesk-service/pkg/util"
)

func requirePrincipal(c *fiber.Ctx) (auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return auth.Principal{}, util.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parsePage(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", 0),
	}
}
