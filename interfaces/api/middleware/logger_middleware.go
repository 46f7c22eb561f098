package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"taskmanager/pkg/logger"
)

// LoggerMiddleware logs one line per completed request.
func LoggerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		logger.DebugContext(c.UserContext(), "Request started",
			"method", c.Method(),
			"path", c.Path(),
			"ip", c.IP(),
			"user_agent", c.Get(fiber.HeaderUserAgent),
		)

		err := c.Next()
		if err != nil {
			// render now so the logged status is the one sent
			if handlerErr := c.App().ErrorHandler(c, err); handlerErr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		logFunc := logger.InfoContext
		if status >= 500 {
			logFunc = logger.ErrorContext
		} else if status >= 400 {
			logFunc = logger.WarnContext
		}

		attrs := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"latency", time.Since(start).String(),
			"bytes", len(c.Response().Body()),
		}
		if user := GetCurrentUser(c); user != nil {
			attrs = append(attrs, "user_id", user.ID)
		}
		logFunc(c.UserContext(), "Request completed", attrs...)

		return nil
	}
}
