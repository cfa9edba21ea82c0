package recommend

import (
	"context"
	"time"
)

// Cache is the subset of the redis client the engine needs. A nil Cache (or
// an unavailable backend) bypasses caching entirely.
type Cache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
