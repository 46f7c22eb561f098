package middleware

import (
	"github.com/gofiber/fiber/v2"

	"taskmanager/interfaces/api/handlers"
)

// ErrorHandler renders errors returned by handlers and middleware in the
// error envelope. With debug set the envelope carries a stack trace.
func ErrorHandler(debug bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		return handlers.HandleError(c, err, debug)
	}
}
