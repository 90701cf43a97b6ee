package repository

import (
	"context"
	"time"
)

// CacheRepository is a key/value cache.
type CacheRepository interface {
	Set(ctx context.Context, key string, value string, expiration time.Duration) error

	// SetNX sets key only when it does not exist and reports whether it did.
	SetNX(ctx context.Context, key string, value string, expiration time.Duration) (bool, error)

	Get(ctx context.Context, key string) (string, error)

	// IsNotFound reports whether err means the key does not exist.
	IsNotFound(err error) bool
}
