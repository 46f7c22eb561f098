package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"taskmanager/domain/dto"
	"taskmanager/domain/models"
	"taskmanager/domain/ports"
	"taskmanager/domain/repositories"
	"taskmanager/domain/services"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
)

type TaskServiceOptions struct {
	// CompleteOnUpdate marks the task completed on every successful update.
	CompleteOnUpdate bool
}

type TaskServiceImpl struct {
	*BaseService[models.Task]
	taskRepo  repositories.TaskRepository
	userRepo  repositories.UserRepository
	publisher ports.EventPublisherPort
	opts      TaskServiceOptions
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	tx repositories.Transactor,
	publisher ports.EventPublisherPort,
	opts TaskServiceOptions,
) services.TaskService {
	return newTaskService(taskRepo, userRepo, tx, publisher, opts)
}

func newTaskService(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	tx repositories.Transactor,
	publisher ports.EventPublisherPort,
	opts TaskServiceOptions,
) *TaskServiceImpl {
	s := &TaskServiceImpl{
		taskRepo:  taskRepo,
		userRepo:  userRepo,
		publisher: publisher,
		opts:      opts,
	}
	s.BaseService = NewBaseService[models.Task](taskRepo, tx, s, "Task")
	return s
}

// ========== Validation hooks ==========

func (s *TaskServiceImpl) ValidateBeforeCreate(ctx context.Context, task *models.Task) error {
	if task.Title == "" {
		return apperror.Validation("Title is required")
	}
	if task.UserID == 0 {
		return apperror.Validation("User ID is required")
	}

	owner, err := s.userRepo.FindByID(ctx, task.UserID)
	if err != nil {
		return err
	}
	if owner == nil {
		return apperror.Validation(fmt.Sprintf("User with id=%d does not exist", task.UserID))
	}

	taken, err := s.taskRepo.TitleTaken(ctx, task.UserID, task.Title, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperror.AlreadyExists(fmt.Sprintf("Task with title '%s' already exists for this user", task.Title))
	}
	return nil
}

func (s *TaskServiceImpl) ValidateBeforeUpdate(ctx context.Context, current *models.Task, changes repositories.Changes) (repositories.Changes, error) {
	if value, ok := changes["user_id"]; ok {
		if owner, isUint := value.(uint); !isUint || owner != current.UserID {
			return nil, apperror.Validation("Cannot change task owner")
		}
	}

	if value, ok := changes["title"]; ok {
		title, isString := value.(string)
		if !isString || title == "" {
			return nil, apperror.Validation("Title is required")
		}
		if title != current.Title {
			taken, err := s.taskRepo.TitleTaken(ctx, current.UserID, title, current.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, apperror.AlreadyExists(fmt.Sprintf("Task with title '%s' already exists for this user", title))
			}
		}
	}

	if value, ok := changes["is_completed"]; ok {
		if _, isBool := value.(bool); !isBool {
			return nil, apperror.Validation("is_completed must be boolean")
		}
	}

	return changes, nil
}

// ========== Consistency hooks ==========

// AfterCreate and AfterDelete keep the owner's is_active flag equal to
// "owns at least one task" inside the mutating transaction.
func (s *TaskServiceImpl) AfterCreate(ctx context.Context, task *models.Task) error {
	return s.syncUserActivity(ctx, task.UserID)
}

func (s *TaskServiceImpl) AfterUpdate(ctx context.Context, task *models.Task) error {
	return s.syncUserActivity(ctx, task.UserID)
}

func (s *TaskServiceImpl) AfterDelete(ctx context.Context, task *models.Task) error {
	return s.syncUserActivity(ctx, task.UserID)
}

func (s *TaskServiceImpl) syncUserActivity(ctx context.Context, userID uint) error {
	count, err := s.taskRepo.CountByUserID(ctx, userID)
	if err != nil {
		return err
	}
	return s.userRepo.SetActive(ctx, userID, count > 0)
}

// ========== Domain operations ==========

func (s *TaskServiceImpl) CreateTask(ctx context.Context, userID uint, title string, description *string) (*models.Task, error) {
	task, err := s.Create(ctx, &models.Task{
		Title:       title,
		Description: description,
		UserID:      userID,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "user_id", userID)
	s.publish(ctx, ports.TaskCreated, task, true)
	return task, nil
}

// GetTaskByUserAndID answers not found for both a missing task and a task
// owned by someone else.
func (s *TaskServiceImpl) GetTaskByUserAndID(ctx context.Context, userID, taskID uint) (*models.Task, error) {
	task, err := s.GetByIDOrFail(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.UserID != userID {
		return nil, apperror.NotFound(fmt.Sprintf("Task with id %d not found for user %d", taskID, userID))
	}
	return task, nil
}

func (s *TaskServiceImpl) ListTasks(ctx context.Context, opts repositories.ListOptions) (*dto.TaskList, error) {
	var result dto.TaskList
	err := s.WithinTransaction(ctx, "list_tasks", func(ctx context.Context) error {
		tasks, err := s.ListPaginated(ctx, opts)
		if err != nil {
			return err
		}
		total, err := s.CountListed(ctx, opts)
		if err != nil {
			return err
		}
		result = dto.TaskList{Tasks: tasks, Total: total}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *TaskServiceImpl) GetTasksByStatus(ctx context.Context, userID uint, completed bool) ([]*models.Task, error) {
	return s.GetByFilter(ctx, repositories.Filters{
		"user_id":      userID,
		"is_completed": completed,
	})
}

func (s *TaskServiceImpl) UpdateTaskByUserAndID(ctx context.Context, userID, taskID uint, patch models.TaskPatch) (*models.Task, error) {
	changes := repositories.Changes(patch.Columns())
	if s.opts.CompleteOnUpdate {
		changes["is_completed"] = true
	}

	var updated *models.Task
	err := s.WithinTransaction(ctx, "update_task_by_user_and_id", func(ctx context.Context) error {
		if _, err := s.GetTaskByUserAndID(ctx, userID, taskID); err != nil {
			return err
		}
		var err error
		updated, err = s.UpdateByID(ctx, taskID, changes)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "Task updated", "task_id", taskID, "user_id", userID)
	s.publish(ctx, ports.TaskUpdated, updated, true)
	return updated, nil
}

func (s *TaskServiceImpl) DeleteTaskByUserAndID(ctx context.Context, userID, taskID uint) (bool, error) {
	var (
		task    *models.Task
		deleted bool
	)
	err := s.WithinTransaction(ctx, "delete_task_by_user_and_id", func(ctx context.Context) error {
		var err error
		if task, err = s.GetTaskByUserAndID(ctx, userID, taskID); err != nil {
			return err
		}
		deleted, err = s.DeleteByID(ctx, taskID)
		return err
	})
	if err != nil {
		return false, err
	}

	if deleted {
		logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
		s.publish(ctx, ports.TaskDeleted, task, false)
	}
	return deleted, nil
}

// publish runs after commit. A failed publish is logged, never returned.
func (s *TaskServiceImpl) publish(ctx context.Context, eventType string, task *models.Task, exists bool) {
	if s.publisher == nil || task == nil {
		return
	}

	active := exists
	if !exists {
		if count, err := s.taskRepo.CountByUserID(ctx, task.UserID); err == nil {
			active = count > 0
		}
	}

	event := &ports.TaskEvent{
		Type:        eventType,
		TaskID:      task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		IsCompleted: task.IsCompleted,
		UserActive:  active,
		OccurredAt:  time.Now().UTC(),
	}
	if err := s.publisher.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event", "type", eventType, "task_id", task.ID, "error", err)
	}
}
