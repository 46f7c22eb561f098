package handlers

import (
	"taskmanager/domain/services"
	"taskmanager/pkg/config"
)

// Services contains the services the HTTP handlers depend on.
type Services struct {
	UserService services.UserService
	TaskService services.TaskService
	AuthService services.AuthService
	Pagination  config.PaginationConfig

	ServiceName  string
	HealthChecks map[string]HealthCheck
}

// Handlers contains all HTTP handlers.
type Handlers struct {
	AuthHandler   *AuthHandler
	UserHandler   *UserHandler
	TaskHandler   *TaskHandler
	HealthHandler *HealthHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		AuthHandler:   NewAuthHandler(services.AuthService),
		UserHandler:   NewUserHandler(services.UserService),
		TaskHandler:   NewTaskHandler(services.TaskService, services.Pagination),
		HealthHandler: NewHealthHandler(services.ServiceName, services.HealthChecks),
	}
}
