package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/domain/services"
	"taskmanager/interfaces/api/handlers"
	"taskmanager/interfaces/api/middleware"
	"taskmanager/pkg/utils"
)

// Guards are the middlewares shared by the route groups.
type Guards struct {
	Tokens      *utils.TokenManager
	UserService services.UserService
	RateLimiter *middleware.RateLimiter
}

// authenticated returns Protected followed by CurrentUser.
func (g Guards) authenticated() []fiber.Handler {
	return []fiber.Handler{
		middleware.Protected(g.Tokens),
		middleware.CurrentUser(g.UserService),
	}
}

func SetupRoutes(app *fiber.App, h *handlers.Handlers, g Guards) {
	SetupHealthRoutes(app, h)
	SetupAuthRoutes(app, h, g)
	SetupTaskRoutes(app, h, g)
	SetupUserRoutes(app, h, g)
}
