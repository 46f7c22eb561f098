package messaging

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskmanager/domain/ports"
	natspkg "taskmanager/infrastructure/nats"
)

type fakeSink struct {
	got []*natspkg.TaskEventMessage
	err error
}

func (s *fakeSink) PublishTaskEvent(_ context.Context, msg *natspkg.TaskEventMessage) error {
	s.got = append(s.got, msg)
	return s.err
}

func TestNATSEventPublisher(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name    string
		event   *ports.TaskEvent
		sinkErr error
		wantErr bool
		wantMsg bool
	}{
		{
			name:    "forwards event",
			event:   &ports.TaskEvent{Type: ports.TaskCreated, TaskID: 7, UserID: 3, Title: "Buy milk", UserActive: true, OccurredAt: at},
			wantMsg: true,
		},
		{name: "nil event", event: nil, wantErr: true},
		{name: "missing task id", event: &ports.TaskEvent{Type: ports.TaskDeleted, UserID: 3}, wantErr: true},
		{
			name:    "sink failure",
			event:   &ports.TaskEvent{Type: ports.TaskUpdated, TaskID: 7, UserID: 3},
			sinkErr: errors.New("no responders"),
			wantErr: true,
			wantMsg: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := &fakeSink{err: tt.sinkErr}
			err := NewNATSEventPublisher(sink).PublishTaskEvent(context.Background(), tt.event)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got := len(sink.got) == 1; got != tt.wantMsg {
				t.Fatalf("sink received %d messages", len(sink.got))
			}
			if !tt.wantMsg || tt.wantErr {
				return
			}
			msg := sink.got[0]
			if msg.Type != tt.event.Type || msg.TaskID != 7 || msg.UserID != 3 || msg.Title != "Buy milk" || !msg.UserActive || !msg.OccurredAt.Equal(at) {
				t.Fatalf("message = %+v", msg)
			}
		})
	}
}

func TestNoopEventPublisher(t *testing.T) {
	if err := NewNoopEventPublisher().PublishTaskEvent(context.Background(), nil); err != nil {
		t.Fatalf("noop publisher returned %v", err)
	}
}
