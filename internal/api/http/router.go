package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Role guards mirror the capability table:
// creation is open to managers and end-users, assignment and status changes
// to managers and support, deletion to managers only. Per-ticket visibility
// is enforced below the guards by the policy layer.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	users := app.Group("/users", cfg.AuthMiddleware.Handle, auth.RequireRole(domain.RoleManager))
	users.Post("", cfg.Users.CreateUser)
	users.Get("", cfg.Users.ListUsers)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", auth.RequireRole(domain.RoleManager, domain.RoleUser), cfg.Tickets.CreateTicket)
	tickets.Get("", auth.RequireRole(), cfg.Tickets.ListTickets)
	tickets.Get("/:id", auth.RequireRole(), cfg.Tickets.GetTicket)
	tickets.Patch("/:id/assign", auth.RequireRole(domain.RoleManager, domain.RoleSupport), cfg.Tickets.AssignTicket)
	tickets.Patch("/:id/status", auth.RequireRole(domain.RoleManager, domain.RoleSupport), cfg.Tickets.UpdateStatus)
	tickets.Delete("/:id", auth.RequireRole(domain.RoleManager), cfg.Tickets.DeleteTicket)
	tickets.Get("/:id/history", auth.RequireRole(), cfg.Tickets.ListHistory)
	tickets.Post("/:id/comments", auth.RequireRole(), cfg.Comments.AddComment)
	tickets.Get("/:id/comments", auth.RequireRole(), cfg.Comments.ListComments)

	comments := app.Group("/comments", cfg.AuthMiddleware.Handle, auth.RequireRole())
	comments.Patch("/:id", cfg.Comments.UpdateComment)
	comments.Delete("/:id", cfg.Comments.DeleteComment)
}
