package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented, time-boxed key/value store. Implementations must
// be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
