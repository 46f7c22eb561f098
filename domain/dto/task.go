package dto

import (
	"strings"
	"time"

	"taskmanager/domain/models"
)

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=100"`
	Description *string `json:"description"`
}

// Normalize strips surrounding whitespace before validation.
func (r *CreateTaskRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Description != nil {
		trimmed := strings.TrimSpace(*r.Description)
		r.Description = &trimmed
	}
}

type UpdateTaskRequest struct {
	Title       *string        `json:"title" validate:"omitempty,min=1,max=100"`
	Description NullableString `json:"description"`
	IsCompleted *bool          `json:"is_completed"`
}

// Patch maps "description": null to clearing the stored description.
func (r *UpdateTaskRequest) Patch() models.TaskPatch {
	return models.TaskPatch{
		Title:            r.Title,
		Description:      r.Description.Value,
		ClearDescription: r.Description.Set && r.Description.Value == nil,
		IsCompleted:      r.IsCompleted,
	}
}

type TaskResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskListQuery is bound from ?skip=&limit=&is_completed=.
type TaskListQuery struct {
	Skip        int   `query:"skip"`
	Limit       int   `query:"limit"`
	IsCompleted *bool `query:"is_completed"`
}

// TaskList is what the task service returns for a listing.
type TaskList struct {
	Tasks []*models.Task
	Total int64
}
