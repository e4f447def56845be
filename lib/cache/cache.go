package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented key/value store with per-entry expiry. It carries
// no domain semantics; callers own serialization and key layout.
//
// A Get that returns (nil, false, nil) is a miss. Implementations report
// transport problems through the error value so that callers can decide to
// degrade instead of failing the surrounding request.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}
