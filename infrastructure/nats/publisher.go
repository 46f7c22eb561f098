package nats

import (
	"context"
	"encoding/json"
	"fmt"

	"taskmanager/pkg/logger"
)

// Publisher publishes JSON messages to the task event stream.
type Publisher struct {
	client *Client
}

func NewPublisher(client *Client) *Publisher {
	return &Publisher{
		client: client,
	}
}

func (p *Publisher) PublishTaskEvent(ctx context.Context, msg *TaskEventMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := p.client.Subject(msg.Type)
	ack, err := p.client.js.Publish(ctx, subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}

	logger.DebugContext(ctx, "Task event published",
		"subject", subject,
		"task_id", msg.TaskID,
		"stream", ack.Stream,
		"sequence", ack.Sequence,
	)
	return nil
}
