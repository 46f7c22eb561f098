package services

import (
	"context"

	"taskmanager/domain/dto"
	"taskmanager/domain/models"
)

type UserService interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error)
	GetProfile(ctx context.Context, userID uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateUserRequest) (*models.User, error)
	GetUserTaskStatus(ctx context.Context, userID uint) (*dto.UserTaskStatus, error)
	DeleteUser(ctx context.Context, userID uint) (bool, error)
}
