package repository

import (
	"context"
	"time"
)

// CacheRepository stores opaque values for a limited time. A ttl of 0 keeps
// the value until it is overwritten.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
