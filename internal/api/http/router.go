package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-gate/internal/api/http/handlers"
	"github.com/spec-kit/ticket-gate/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Validations    *handlers.ValidationsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/token", cfg.Auth.IssueToken)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle)
	api.Post("/validations", cfg.Validations.Validate)
	api.Post("/validations/legacy", cfg.Validations.ValidateLegacy)
}
