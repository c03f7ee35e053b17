package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/soportek/helpdesk-service/internal/api/http/handlers"
	"github.com/soportek/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Departments    *handlers.DepartmentsHandler
	Categories     *handlers.CategoriesHandler
	Tickets        *handlers.TicketsHandler
	Messages       *handlers.MessagesHandler
	Attachments    *handlers.AttachmentsHandler
	Notifications  *handlers.NotificationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/token", cfg.Auth.Token)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/me/", cfg.AuthMiddleware.Handle, cfg.Users.Me)
	users.Get("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Users.List)

	departments := app.Group("/departments")
	departments.Get("/", cfg.Departments.List)
	departments.Post("/", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Departments.Create)
	departments.Delete("/:id", cfg.AuthMiddleware.Handle, auth.RequireAdmin(), cfg.Departments.Delete)

	categories := app.Group("/categorias", cfg.AuthMiddleware.Handle)
	categories.Get("/", cfg.Categories.List)
	categories.Get("/:id", cfg.Categories.Get)
	categories.Post("/", auth.RequireAdmin(), cfg.Categories.Create)
	categories.Put("/:id", auth.RequireAdmin(), cfg.Categories.Update)
	categories.Delete("/:id", auth.RequireAdmin(), cfg.Categories.Delete)
	categories.Get("/:id/departamentos/", cfg.Categories.ListDepartments)
	categories.Post("/:id/departamentos/:departmentID", auth.RequireAdmin(), cfg.Categories.AssignDepartment)
	categories.Delete("/:id/departamentos/:departmentID", auth.RequireAdmin(), cfg.Categories.RemoveDepartment)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Patch("/:id", cfg.Tickets.Update)
	tickets.Delete("/:id", cfg.Tickets.Delete)
	tickets.Post("/:id/comments/", cfg.Tickets.AddComment)
	tickets.Get("/:id/comments/", cfg.Tickets.ListComments)

	messages := app.Group("/mensajes", cfg.AuthMiddleware.Handle)
	messages.Post("/", cfg.Messages.Create)
	messages.Get("/", cfg.Messages.List)
	messages.Get("/:id", cfg.Messages.Get)
	messages.Put("/:id", cfg.Messages.Update)
	messages.Delete("/:id", cfg.Messages.Delete)

	attachments := app.Group("/attachments", cfg.AuthMiddleware.Handle)
	attachments.Post("/", cfg.Attachments.Upload)
	attachments.Get("/ticket/:id", cfg.Attachments.ListByTicket)
	attachments.Get("/:id", cfg.Attachments.Get)
	attachments.Delete("/:id", cfg.Attachments.Delete)

	app.Get("/notifications/", cfg.AuthMiddleware.Handle, cfg.Notifications.List)
}
