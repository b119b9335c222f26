package archive

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/tillpoint/tillpoint-api/internal/domain/repository"
)

// RedisIdempotencyStore remembers checkout idempotency keys and the response
// produced for them, so a retried submission replays instead of double-billing.
type RedisIdempotencyStore struct {
	client *redis.Client
}

func NewRedisIdempotencyStore(client *redis.Client) *RedisIdempotencyStore {
	return &RedisIdempotencyStore{client: client}
}

var _ repository.IdempotencyRepository = (*RedisIdempotencyStore)(nil)

func idempotencyKey(key string) string {
	return fmt.Sprintf("tillpoint:idem:%s", key)
}

func (s *RedisIdempotencyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Get(ctx, idempotencyKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("idempotency: get: %w", err)
	}
	return data, true, nil
}

func (s *RedisIdempotencyStore) Set(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, idempotencyKey(key), response, ttl).Err(); err != nil {
		return fmt.Errorf("idempotency: set: %w", err)
	}
	return nil
}
