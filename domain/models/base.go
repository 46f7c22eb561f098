package models

import "time"

// BaseModel is embedded by every persisted entity.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey"`
	CreatedAt time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (m BaseModel) GetID() uint {
	return m.ID
}

// Entity is implemented by every model the generic data-access layer serves.
type Entity interface {
	TableName() string
	GetID() uint
}

// Owned is implemented by entities that belong to a user. OwnerColumn names
// the column compared with the caller's id when listings are scoped.
type Owned interface {
	OwnerColumn() string
}
