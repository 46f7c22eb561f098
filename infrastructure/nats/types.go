package nats

import "time"

const (
	// StreamName holds every task event; subjects are <prefix>.<event>.
	StreamName           = "TASK_EVENTS"
	DefaultSubjectPrefix = "tasks"
)

// TaskEventMessage is the wire format of a task event.
type TaskEventMessage struct {
	Type        string    `json:"type"`
	TaskID      uint      `json:"task_id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	IsCompleted bool      `json:"is_completed"`
	UserActive  bool      `json:"user_active"`
	OccurredAt  time.Time `json:"occurred_at"`
}
