package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PencariData/search-service-api/internal/config"
)

// NewRedisClient connects and pings a Redis server. One client is shared by
// every typed Redis cache view.
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return client, nil
}

// Redis is a Redis-backed cache view for one payload type. Payloads are
// stored as JSON; the TTL is enforced server-side.
type Redis[T any] struct {
	client *redis.Client
}

// NewRedis wraps an existing client. The client's lifetime belongs to the
// caller; Close is a no-op.
func NewRedis[T any](client *redis.Client) *Redis[T] {
	return &Redis[T]{client: client}
}

func (c *Redis[T]) Get(ctx context.Context, key string) (*T, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &value, nil
}

func (c *Redis[T]) Set(ctx context.Context, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *Redis[T]) Close() error {
	return nil
}
