package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/interfaces/api/handlers"
)

func SetupAuthRoutes(app *fiber.App, h *handlers.Handlers, g Guards) {
	auth := app.Group("/auth")
	auth.Post("/register", g.RateLimiter.Auth(), h.AuthHandler.Register)
	auth.Post("/login", g.RateLimiter.Auth(), h.AuthHandler.Login)
	auth.Post("/refresh", h.AuthHandler.Refresh)
	auth.Get("/verify", append(g.authenticated(), h.AuthHandler.Verify)...)
}
