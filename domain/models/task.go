package models

type Task struct {
	BaseModel
	Title       string  `gorm:"size:100;not null;uniqueIndex:idx_task_user_title,priority:2;index:idx_task_title_active,priority:1"`
	Description *string `gorm:"type:text"`
	IsCompleted bool    `gorm:"not null;default:false;index:idx_task_title_active,priority:2"`
	UserID      uint    `gorm:"not null;index;uniqueIndex:idx_task_user_title,priority:1"`
}

func (Task) TableName() string {
	return "tasks"
}

func (Task) OwnerColumn() string {
	return "user_id"
}

// TaskPatch is a partial task update. Nil fields are left untouched;
// ClearDescription sets the description to NULL.
type TaskPatch struct {
	Title            *string
	Description      *string
	ClearDescription bool
	IsCompleted      *bool
}

func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && !p.ClearDescription && p.IsCompleted == nil
}

func (p TaskPatch) Columns() map[string]any {
	changes := make(map[string]any)
	if p.Title != nil {
		changes["title"] = *p.Title
	}
	if p.Description != nil {
		changes["description"] = *p.Description
	} else if p.ClearDescription {
		changes["description"] = nil
	}
	if p.IsCompleted != nil {
		changes["is_completed"] = *p.IsCompleted
	}
	return changes
}
