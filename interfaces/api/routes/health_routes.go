package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/interfaces/api/handlers"
)

// SetupHealthRoutes mounts the unauthenticated liveness and readiness routes.
func SetupHealthRoutes(app *fiber.App, h *handlers.Handlers) {
	app.Get("/health", h.HealthHandler.Health)
	app.Get("/", h.HealthHandler.Index)
}
