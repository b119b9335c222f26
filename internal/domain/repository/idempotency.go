package repository

import (
	"context"
	"time"
)

// IdempotencyRepository remembers checkout idempotency keys together with the
// response body that was produced for them, so a retried submission replays
// the original result instead of double-billing.
type IdempotencyRepository interface {
	// Get returns the stored response for a key, or (nil, false, nil) when
	// the key has not been seen.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores the response for a key with a TTL.
	Set(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
