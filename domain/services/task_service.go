package services

import (
	"context"

	"taskmanager/domain/dto"
	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
)

type TaskService interface {
	CreateTask(ctx context.Context, userID uint, title string, description *string) (*models.Task, error)
	GetTaskByUserAndID(ctx context.Context, userID, taskID uint) (*models.Task, error)
	// ListTasks lists the caller's tasks; the owner comes from the context principal.
	ListTasks(ctx context.Context, opts repositories.ListOptions) (*dto.TaskList, error)
	GetTasksByStatus(ctx context.Context, userID uint, completed bool) ([]*models.Task, error)
	UpdateTaskByUserAndID(ctx context.Context, userID, taskID uint, patch models.TaskPatch) (*models.Task, error)
	DeleteTaskByUserAndID(ctx context.Context, userID, taskID uint) (bool, error)
}
