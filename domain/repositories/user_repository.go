package repositories

import (
	"context"

	"taskmanager/domain/models"
)

type UserRepository interface {
	Repository[models.User]
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// IsTaken reports whether another user (id != excludeID) already uses the
	// username or the email. Empty arguments are not checked.
	IsTaken(ctx context.Context, username, email string, excludeID uint) (bool, error)
	SetActive(ctx context.Context, userID uint, active bool) error
}
