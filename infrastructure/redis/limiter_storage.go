package redis

import (
	"context"
	"time"
)

const (
	DefaultLimiterPrefix = "ratelimit:"
	storageTimeout       = 2 * time.Second
)

// LimiterStorage implements fiber.Storage on Redis so rate-limit counters
// are shared by every API instance.
type LimiterStorage struct {
	client *Client
	prefix string
}

func NewLimiterStorage(client *Client, prefix string) *LimiterStorage {
	if prefix == "" {
		prefix = DefaultLimiterPrefix
	}
	return &LimiterStorage{client: client, prefix: prefix}
}

func (s *LimiterStorage) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.GetBytes(ctx, s.prefix+key)
}

func (s *LimiterStorage) Set(key string, val []byte, exp time.Duration) error {
	if key == "" || len(val) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.Set(ctx, s.prefix+key, val, exp)
}

func (s *LimiterStorage) Delete(key string) error {
	if key == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), storageTimeout)
	defer cancel()
	return s.client.Del(ctx, s.prefix+key)
}

// Reset removes only the keys under this storage's prefix.
func (s *LimiterStorage) Reset() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*storageTimeout)
	defer cancel()
	_, err := s.client.ScanAndDelete(ctx, s.prefix+"*")
	return err
}

// Close is a no-op; the shared client is closed by its owner.
func (s *LimiterStorage) Close() error {
	return nil
}
