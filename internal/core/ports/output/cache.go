package ports

import (
	"context"
	"time"
)

// ResponseCache stores raw upstream response bodies by key. Get returns
// domain.ErrCacheMiss when the key is absent or expired.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Ping(ctx context.Context) error
}
