package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"taskmanager/pkg/logger"
)

// Client wraps a NATS connection with its JetStream context.
type Client struct {
	conn          *nats.Conn
	js            jetstream.JetStream
	stream        jetstream.Stream
	subjectPrefix string
}

type ClientConfig struct {
	URL           string // nats://localhost:4222
	SubjectPrefix string
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.SubjectPrefix == "" {
		cfg.SubjectPrefix = DefaultSubjectPrefix
	}

	nc, err := nats.Connect(cfg.URL,
		nats.Name("taskmanager-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		conn:          nc,
		js:            js,
		subjectPrefix: cfg.SubjectPrefix,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.setupStream(ctx); err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to setup stream: %w", err)
	}

	logger.Info("NATS client initialized", "url", cfg.URL, "stream", StreamName)
	return client, nil
}

func (c *Client) setupStream(ctx context.Context) error {
	stream, err := c.js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{c.subjectPrefix + ".>"},
		Storage:     jetstream.FileStorage,
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      7 * 24 * time.Hour,
		Replicas:    1,
		Description: "Task lifecycle events",
	})
	if err != nil {
		return fmt.Errorf("failed to create/update stream: %w", err)
	}
	c.stream = stream
	return nil
}

// Subject builds the full subject for an event type such as "task.created".
func (c *Client) Subject(eventType string) string {
	return c.subjectPrefix + "." + eventType
}

func (c *Client) Close() error {
	if c.conn != nil {
		c.conn.Close()
		logger.Info("NATS connection closed")
	}
	return nil
}
