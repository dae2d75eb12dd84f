package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/pastaprego-backend/pkg/redis"
)

// Redis stores records as plain string values under pp:record:<name>.
// The client is shared with other components, so Close leaves it open.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) (*Redis, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &Redis{client: client, ttl: ttl}, nil
}

func (r *Redis) Load(ctx context.Context, name string) ([]byte, error) {
	value, err := r.client.Get(ctx, r.client.RecordKey(name))
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", name, err)
	}
	return []byte(value), nil
}

func (r *Redis) Save(ctx context.Context, name string, payload []byte) error {
	if err := r.client.Set(ctx, r.client.RecordKey(name), string(payload), r.ttl); err != nil {
		return fmt.Errorf("redis set %q: %w", name, err)
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}

func (r *Redis) Close() error { return nil }
