package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"taskmanager/domain/models"
	"taskmanager/domain/repositories"
)

type UserRepositoryImpl struct {
	*BaseRepository[models.User]
}

func NewUserRepository(db *gorm.DB) (repositories.UserRepository, error) {
	base, err := NewBaseRepository[models.User](db)
	if err != nil {
		return nil, err
	}
	return &UserRepositoryImpl{BaseRepository: base}, nil
}

func (r *UserRepositoryImpl) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := conn(ctx, r.db).Where("username = ?", username).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, translateError("users.get_by_username", err)
	}
	return &user, nil
}

func (r *UserRepositoryImpl) IsTaken(ctx context.Context, username, email string, excludeID uint) (bool, error) {
	if username == "" && email == "" {
		return false, nil
	}

	match := conn(ctx, r.db).Session(&gorm.Session{NewDB: true})
	switch {
	case username != "" && email != "":
		match = match.Where("username = ?", username).Or("LOWER(email) = ?", strings.ToLower(email))
	case username != "":
		match = match.Where("username = ?", username)
	default:
		match = match.Where("LOWER(email) = ?", strings.ToLower(email))
	}

	query := conn(ctx, r.db).Model(&models.User{}).Where(match)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, translateError("users.exists", err)
	}
	return count > 0, nil
}

func (r *UserRepositoryImpl) SetActive(ctx context.Context, userID uint, active bool) error {
	err := conn(ctx, r.db).Model(&models.User{}).Where("id = ?", userID).Update("is_active", active).Error
	return translateError("users.set_active", err)
}
