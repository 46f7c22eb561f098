package postgres

import (
	"context"

	"gorm.io/gorm"

	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
)

type TaskRepositoryImpl struct {
	*BaseRepository[models.Task]
}

func NewTaskRepository(db *gorm.DB) (repositories.TaskRepository, error) {
	base, err := NewBaseRepository[models.Task](db)
	if err != nil {
		return nil, err
	}
	return &TaskRepositoryImpl{BaseRepository: base}, nil
}

func (r *TaskRepositoryImpl) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.Task{}).Where("user_id = ?", userID).Count(&count).Error
	if err != nil {
		return 0, translateError("tasks.count_by_user", err)
	}
	return count, nil
}

func (r *TaskRepositoryImpl) StatusCounts(ctx context.Context, userID uint) (int64, int64, error) {
	var row struct {
		Total     int64
		Completed int64
	}
	err := conn(ctx, r.db).Model(&models.Task{}).
		Select("COUNT(id) AS total, COUNT(CASE WHEN is_completed THEN 1 END) AS completed").
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, translateError("tasks.status_counts", err)
	}
	return row.Total, row.Completed, nil
}

func (r *TaskRepositoryImpl) TitleTaken(ctx context.Context, userID uint, title string, excludeID uint) (bool, error) {
	query := conn(ctx, r.db).Model(&models.Task{}).Where("user_id = ? AND title = ?", userID, title)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError("tasks.title_taken", err)
	}
	return count > 0, nil
}

func (r *TaskRepositoryImpl) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := conn(ctx, r.db).Where("user_id = ?", userID).Delete(&models.Task{})
	if result.Error != nil {
		return 0, translateError("tasks.delete_by_user", result.Error)
	}
	return result.RowsAffected, nil
}
