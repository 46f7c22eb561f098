package serviceimpl

import (
	"context"
	"fmt"
	"strings"

	"taskmanager/domain/dto"
	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
	"taskmanager/domain/services"
	"taskmanager/pkg/apperror"
	"taskmanager/pkg/logger"
	"taskmanager/pkg/utils"
)

type UserServiceImpl struct {
	*BaseService[models.User]
	userRepo repositories.UserRepository
	taskRepo repositories.TaskRepository
}

func NewUserService(userRepo repositories.UserRepository, taskRepo repositories.TaskRepository, tx repositories.Transactor) services.UserService {
	return newUserService(userRepo, taskRepo, tx)
}

func newUserService(userRepo repositories.UserRepository, taskRepo repositories.TaskRepository, tx repositories.Transactor) *UserServiceImpl {
	s := &UserServiceImpl{
		userRepo: userRepo,
		taskRepo: taskRepo,
	}
	s.BaseService = NewBaseService[models.User](userRepo, tx, s, "User")
	return s
}

// ========== Validation hooks ==========

func (s *UserServiceImpl) ValidateBeforeCreate(ctx context.Context, user *models.User) error {
	if user.Username == "" || user.Email == "" {
		return apperror.Validation("Username and email are required")
	}
	if err := validateUserData(user.Username, user.Email); err != nil {
		return err
	}

	taken, err := s.userRepo.IsTaken(ctx, user.Username, user.Email, 0)
	if err != nil {
		return err
	}
	if taken {
		return apperror.AlreadyExists("User with this username or email already exists")
	}
	return nil
}

func (s *UserServiceImpl) ValidateBeforeUpdate(ctx context.Context, current *models.User, changes repositories.Changes) (repositories.Changes, error) {
	if username, ok := changes["username"].(string); ok && username != current.Username {
		taken, err := s.userRepo.IsTaken(ctx, username, "", current.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.AlreadyExists(fmt.Sprintf("Username '%s' already exists", username))
		}
	}

	if email, ok := changes["email"].(string); ok && !strings.EqualFold(email, current.Email) {
		taken, err := s.userRepo.IsTaken(ctx, "", email, current.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.AlreadyExists(fmt.Sprintf("Email '%s' already exists", email))
		}
	}

	// activity is derived from task ownership and never set directly
	delete(changes, "is_active")
	return changes, nil
}

func validateUserData(username, email string) error {
	if !utils.IsValidEmail(email) {
		return apperror.Validation("Invalid email format")
	}
	if len([]rune(username)) < 3 {
		return apperror.Validation("Username must be at least 3 characters")
	}
	if len([]rune(username)) > 50 {
		return apperror.Validation("Username must be at most 50 characters")
	}
	return nil
}

// ========== Domain operations ==========

func (s *UserServiceImpl) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	user, err := s.Create(ctx, &models.User{
		Username:     strings.TrimSpace(username),
		Email:        utils.NormalizeEmail(email),
		PasswordHash: passwordHash,
	})
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.GetByIDOrFail(ctx, userID)
}

// FindByUsername returns (nil, nil) for an unknown username.
func (s *UserServiceImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user *models.User
	err := s.WithinTransaction(ctx, "get_by_username", func(ctx context.Context) error {
		var err error
		user, err = s.userRepo.FindByUsername(ctx, strings.TrimSpace(username))
		return err
	})
	return user, err
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateUserRequest) (*models.User, error) {
	if msg := req.CheckPasswordFields(); msg != "" {
		return nil, apperror.Validation(msg)
	}

	user, err := s.GetByIDOrFail(ctx, userID)
	if err != nil {
		return nil, err
	}

	var patch models.UserPatch

	if req.Username != nil && strings.TrimSpace(*req.Username) != "" {
		username := strings.TrimSpace(*req.Username)
		if n := len([]rune(username)); n < 3 || n > 50 {
			return nil, apperror.Validation("Username must be between 3 and 50 characters")
		}
		patch.Username = &username
	}

	if req.Email != nil && strings.TrimSpace(*req.Email) != "" {
		email := utils.NormalizeEmail(*req.Email)
		if !utils.IsValidEmail(email) {
			return nil, apperror.Validation("Invalid email format")
		}
		patch.Email = &email
	}

	if req.WantsPasswordChange() {
		if !utils.VerifyPassword(*req.OldPassword, user.PasswordHash) {
			return nil, apperror.Validation("Old password is incorrect")
		}
		if problems := utils.CheckPasswordStrength(*req.NewPassword); len(problems) > 0 {
			return nil, apperror.Validation("Weak password: " + strings.Join(problems, "; "))
		}
		hash, err := utils.HashPassword(*req.NewPassword)
		if err != nil {
			return nil, apperror.Internal("Failed to hash password", err)
		}
		patch.PasswordHash = &hash
	}

	if patch.IsEmpty() {
		return nil, apperror.Validation("No valid fields provided for update")
	}

	updated, err := s.UpdateByID(ctx, userID, repositories.Changes(patch.Columns()))
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "User profile updated", "user_id", userID)
	return updated, nil
}

func (s *UserServiceImpl) GetUserTaskStatus(ctx context.Context, userID uint) (*dto.UserTaskStatus, error) {
	var status dto.UserTaskStatus
	err := s.WithinTransaction(ctx, "get_user_task_status", func(ctx context.Context) error {
		user, err := s.GetByIDOrFail(ctx, userID)
		if err != nil {
			return err
		}
		total, completed, err := s.taskRepo.StatusCounts(ctx, userID)
		if err != nil {
			return err
		}

		status = dto.UserTaskStatus{
			UserID:            user.ID,
			TotalTasks:        total,
			CompletedTasks:    completed,
			AllTasksCompleted: total > 0 && total == completed,
		}
		if status.AllTasksCompleted {
			active := user.IsActive
			status.IsActive = &active
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// DeleteUser removes the user's tasks and then the user in one transaction.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uint) (bool, error) {
	var deleted bool
	err := s.WithinTransaction(ctx, "delete_user", func(ctx context.Context) error {
		removed, err := s.taskRepo.DeleteByUserID(ctx, userID)
		if err != nil {
			return err
		}
		if deleted, err = s.DeleteByID(ctx, userID); err != nil {
			return err
		}
		if removed > 0 {
			logger.InfoContext(ctx, "Removed tasks of deleted user", "user_id", userID, "tasks", removed)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
