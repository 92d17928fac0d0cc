package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore shares counters across instances via Redis.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// Incr bumps the key's counter. The expiry is set when the key is first
// created, so the window starts at the first hit.
func (s *RedisStore) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
