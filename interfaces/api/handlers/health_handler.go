package handlers

import (
	"context"
	"sort"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskmanager/pkg/logger"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether one backing dependency is reachable.
type HealthCheck func(ctx context.Context) error

type HealthHandler struct {
	service string
	checks  map[string]HealthCheck
}

func NewHealthHandler(service string, checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{service: service, checks: checks}
}

// Health handles GET /health. Any failing check turns the answer into a 503.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make(fiber.Map, len(names))
	healthy := true
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
		err := h.checks[name](ctx)
		cancel()

		if err != nil {
			healthy = false
			results[name] = err.Error()
			logger.WarnContext(c.UserContext(), "Health check failed", "check", name, "error", err)
			continue
		}
		results[name] = "ok"
	}

	status, code := "ok", fiber.StatusOK
	if !healthy {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":  status,
		"service": h.service,
		"checks":  results,
	})
}

// Index handles GET /.
func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to " + h.service,
		"health":  "/health",
	})
}
