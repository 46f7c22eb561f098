package repositories

import (
	"context"

	"taskmanager/domain/models"
)

type TaskRepository interface {
	Repository[models.Task]
	CountByUserID(ctx context.Context, userID uint) (int64, error)
	// StatusCounts returns how many tasks the user owns and how many of them are completed.
	StatusCounts(ctx context.Context, userID uint) (total int64, completed int64, err error)
	TitleTaken(ctx context.Context, userID uint, title string, excludeID uint) (bool, error)
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
}
