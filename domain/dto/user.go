package dto

import (
	"fmt"
	"strings"
	"time"
)

// UpdateUserRequest is a partial profile update. The three password fields
// travel together.
type UpdateUserRequest struct {
	Username     *string `json:"username" validate:"omitempty,min=3,max=50"`
	Email        *string `json:"email" validate:"omitempty,email,max=255"`
	OldPassword  *string `json:"old_password"`
	NewPassword  *string `json:"new_password" validate:"omitempty,min=6"`
	NewPassword2 *string `json:"new_password2"`
}

func (r *UpdateUserRequest) WantsPasswordChange() bool {
	return r.OldPassword != nil || r.NewPassword != nil || r.NewPassword2 != nil
}

// CheckPasswordFields returns a message when the password change block is
// incomplete or its confirmation differs, "" otherwise.
func (r *UpdateUserRequest) CheckPasswordFields() string {
	if !r.WantsPasswordChange() {
		return ""
	}

	var missing []string
	if r.OldPassword == nil {
		missing = append(missing, "old_password")
	}
	if r.NewPassword == nil {
		missing = append(missing, "new_password")
	}
	if r.NewPassword2 == nil {
		missing = append(missing, "new_password2")
	}
	if len(missing) > 0 {
		return fmt.Sprintf("Missing required fields for password change: %s", strings.Join(missing, ", "))
	}
	if *r.NewPassword != *r.NewPassword2 {
		return "New passwords do not match"
	}
	return ""
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserTaskStatus summarises a user's tasks. IsActive is only present when
// every task is completed.
type UserTaskStatus struct {
	UserID            uint  `json:"user_id"`
	TotalTasks        int64 `json:"total_tasks"`
	CompletedTasks    int64 `json:"completed_tasks"`
	AllTasksCompleted bool  `json:"all_tasks_completed"`
	IsActive          *bool `json:"is_active,omitempty"`
}
