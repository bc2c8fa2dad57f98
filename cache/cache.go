// Package cache persists the local fallback documents.
package cache

import (
	"context"
	"errors"
)

// ErrMiss is returned by Get when a key has no value.
var ErrMiss = errors.New("cache: key not found")

// KV stores opaque documents by key.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
