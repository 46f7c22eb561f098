package ports

import (
	"context"
	"time"
)

const (
	TaskCreated = "task.created"
	TaskUpdated = "task.updated"
	TaskDeleted = "task.deleted"
)

// TaskEvent is published after a task mutation has been committed.
type TaskEvent struct {
	Type        string
	TaskID      uint
	UserID      uint
	Title       string
	IsCompleted bool
	UserActive  bool
	OccurredAt  time.Time
}

// EventPublisherPort delivers domain events. Implementations must not block
// the request for long; delivery is best effort.
type EventPublisherPort interface {
	PublishTaskEvent(ctx context.Context, event *TaskEvent) error
}
