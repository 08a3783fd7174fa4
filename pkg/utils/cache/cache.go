package cache

import (
	"context"
	"errors"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is a read-through cache. Implementations load missing entries on Get.
type Cache[K comparable, V any] interface {
	Get(ctx context.Context, key K) (*V, error)
	Invalidate(ctx context.Context, key K)
	InvalidateAll(ctx context.Context)
}
