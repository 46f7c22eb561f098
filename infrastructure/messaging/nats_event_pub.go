package messaging

import (
	"context"
	"fmt"

	"taskmanager/domain/ports"
	natspkg "taskmanager/infrastructure/nats"
)

// TaskEventSink is the transport the publisher adapter writes to.
type TaskEventSink interface {
	PublishTaskEvent(ctx context.Context, msg *natspkg.TaskEventMessage) error
}

// NATSEventPublisher implements EventPublisherPort on top of JetStream.
type NATSEventPublisher struct {
	sink TaskEventSink
}

func NewNATSEventPublisher(sink TaskEventSink) ports.EventPublisherPort {
	return &NATSEventPublisher{sink: sink}
}

func (p *NATSEventPublisher) PublishTaskEvent(ctx context.Context, event *ports.TaskEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.TaskID == 0 {
		return fmt.Errorf("task_id is required")
	}

	return p.sink.PublishTaskEvent(ctx, &natspkg.TaskEventMessage{
		Type:        event.Type,
		TaskID:      event.TaskID,
		UserID:      event.UserID,
		Title:       event.Title,
		IsCompleted: event.IsCompleted,
		UserActive:  event.UserActive,
		OccurredAt:  event.OccurredAt,
	})
}

// NoopEventPublisher drops events. Used when NATS is not configured.
type NoopEventPublisher struct{}

func NewNoopEventPublisher() ports.EventPublisherPort {
	return NoopEventPublisher{}
}

func (NoopEventPublisher) PublishTaskEvent(context.Context, *ports.TaskEvent) error {
	return nil
}
