package models

import "strings"

type User struct {
	BaseModel
	Username     string `gorm:"size:50;not null;uniqueIndex;index:idx_user_username_active,priority:1"`
	Email        string `gorm:"size:255;not null;uniqueIndex;index:idx_user_email_active,priority:1"`
	PasswordHash string `gorm:"size:255"`
	// IsActive mirrors "owns at least one task" and is maintained by the task service.
	IsActive bool   `gorm:"not null;default:false;index;index:idx_user_email_active,priority:2;index:idx_user_username_active,priority:2"`
	Tasks    []Task `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// A user owns its own row.
func (User) OwnerColumn() string {
	return "id"
}

// UserPatch is a partial profile update. Nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil
}

// Columns renders the non-nil fields as a column -> value map.
func (p UserPatch) Columns() map[string]any {
	changes := make(map[string]any)
	if p.Username != nil {
		changes["username"] = strings.TrimSpace(*p.Username)
	}
	if p.Email != nil {
		changes["email"] = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.PasswordHash != nil {
		changes["password_hash"] = *p.PasswordHash
	}
	return changes
}
