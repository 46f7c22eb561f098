package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"taskmanager/pkg/apperror"
	"taskmanager/pkg/config"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

// RateLimiter builds fixed-window limiters keyed by client IP. A nil
// storage keeps counters in process memory.
type RateLimiter struct {
	cfg     config.RateLimitConfig
	storage fiber.Storage
}

func NewRateLimiter(cfg config.RateLimitConfig, storage fiber.Storage) *RateLimiter {
	return &RateLimiter{cfg: cfg, storage: storage}
}

// Auth limits register and login. Each route it is mounted on keeps its
// own counter, whatever the storage.
func (r *RateLimiter) Auth() fiber.Handler {
	return r.limit("auth", r.cfg.AuthPerMinute, time.Minute, true)
}

// Global returns the per-minute and per-hour limiters.
func (r *RateLimiter) Global() []fiber.Handler {
	return []fiber.Handler{
		r.limit("global:minute", r.cfg.PerMinute, time.Minute, false),
		r.limit("global:hour", r.cfg.PerHour, time.Hour, false),
	}
}

func (r *RateLimiter) limit(name string, max int, window time.Duration, perRoute bool) fiber.Handler {
	return limiter.New(limiter.Config{
		Next: func(c *fiber.Ctx) bool {
			return !r.cfg.Enabled || max <= 0
		},
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return limiterKey(name, c, perRoute)
		},
		LimitReached: func(c *fiber.Ctx) error {
			logger.WarnContext(c.UserContext(), "Rate limit exceeded",
				"limiter", name,
				"ip", c.IP(),
				"path", c.Path(),
			)
			return utils.ErrorResponse(c, fiber.StatusTooManyRequests, string(apperror.CodeRateLimited),
				fmt.Sprintf("Rate limit exceeded: %d per %s", max, describeWindow(window)), nil)
		},
		Storage: r.storage,
	})
}

func describeWindow(window time.Duration) string {
	switch window {
	case time.Minute:
		return "minute"
	case time.Hour:
		return "hour"
	default:
		return window.String()
	}
}

// limiterKey is name:ip, or name:method:route:ip for per-route limits.
func limiterKey(name string, c *fiber.Ctx, perRoute bool) string {
	if !perRoute {
		return name + ":" + c.IP()
	}
	return name + ":" + c.Method() + ":" + c.Route().Path + ":" + c.IP()
}
