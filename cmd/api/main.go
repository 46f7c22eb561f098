package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"

	"taskmanager/interfaces/api/handlers"
	"taskmanager/interfaces/api/middleware"
	"taskmanager/interfaces/api/routes"
	"taskmanager/pkg/di"
	"taskmanager/pkg/logger"
)

func main() {
	container := di.NewContainer()

	if err := container.Initialize(); err != nil {
		panic("Failed to initialize container: " + err.Error())
	}

	cfg := container.GetConfig()

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(cfg.App.Debug),
		AppName:      cfg.App.Name,
		BodyLimit:    1 * 1024 * 1024,
	})

	// request ID must come before the logger
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.SecurityHeaders())
	app.Use(middleware.CorsMiddleware(cfg.App.CORSOrigins))

	limiter := container.GetRateLimiter()
	for _, handler := range limiter.Global() {
		app.Use(handler)
	}

	h := handlers.NewHandlers(container.GetHandlerServices())
	routes.SetupRoutes(app, h, routes.Guards{
		Tokens:      container.TokenManager,
		UserService: container.UserService,
		RateLimiter: limiter,
	})

	setupGracefulShutdown(app, container)

	port := cfg.App.Port
	logger.Info("Server starting",
		"port", port,
		"env", cfg.App.Env,
		"app", cfg.App.Name,
	)

	if err := app.Listen(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

func setupGracefulShutdown(app *fiber.App, container *di.Container) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		logger.Info("Gracefully shutting down...")

		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			logger.Error("Error shutting down server", "error", err)
		}

		if err := container.Cleanup(); err != nil {
			logger.Error("Error during cleanup", "error", err)
		}

		logger.Info("Shutdown complete")
		os.Exit(0)
	}()
}
