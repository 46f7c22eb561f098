package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/interfaces/api/handlers"
)

func SetupUserRoutes(app *fiber.App, h *handlers.Handlers, g Guards) {
	user := app.Group("/user", g.authenticated()...)
	user.Get("/", h.UserHandler.GetProfile)
	user.Put("/", h.UserHandler.UpdateProfile)
	user.Delete("/", h.UserHandler.DeleteProfile)
	user.Get("/task-status", h.UserHandler.GetTaskStatus)
}
