// Package local implements the repositories on top of a cache.KV. Each store
// keeps one JSON document per user under a fixed name ("food-storage.<user>").
package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rajivijay0509/nutrition-tracker-web/cache"
)

type document[T any] struct {
	kv   cache.KV
	name string
	mu   sync.RWMutex
}

func newDocument[T any](kv cache.KV, name string) *document[T] {
	return &document[T]{kv: kv, name: name}
}

func (d *document[T]) key(scope string) string {
	if scope == "" {
		return d.name
	}
	return d.name + "." + scope
}

func (d *document[T]) load(ctx context.Context, scope string) (T, error) {
	var v T
	b, err := d.kv.Get(ctx, d.key(scope))
	if errors.Is(err, cache.ErrMiss) {
		return v, nil
	}
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(b, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", d.key(scope), err)
	}
	return v, nil
}

func (d *document[T]) read(ctx context.Context, scope string) (T, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.load(ctx, scope)
}

// update loads, mutates and stores the document under the write lock.
// A non-nil error from fn leaves the stored document untouched.
func (d *document[T]) update(ctx context.Context, scope string, fn func(*T) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	v, err := d.load(ctx, scope)
	if err != nil {
		return err
	}
	if err := fn(&v); err != nil {
		return err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return d.kv.Set(ctx, d.key(scope), b)
}

func inRange(date, from, to string) bool {
	return (from == "" || date >= from) && (to == "" || date <= to)
}
