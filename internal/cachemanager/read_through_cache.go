package cachemanager

import (
	"context"
	"time"
)

// ReadThroughCache returns cached values and falls back to fn on a miss,
// storing what fn returns. Errors are never cached.
type ReadThroughCache[K comparable, V any] struct {
	cache CacheManager[K, V]
	fn    func(ctx context.Context, key K) (V, error)
	ttl   time.Duration
}

// NewReadThroughCache wraps cache with the loader fn. A ttl <= 0 disables
// caching and every Get calls fn.
func NewReadThroughCache[K comparable, V any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, key K) (V, error),
	ttl time.Duration,
) *ReadThroughCache[K, V] {
	return &ReadThroughCache[K, V]{
		cache: cache,
		fn:    fn,
		ttl:   ttl,
	}
}

// Enabled reports whether values are cached at all.
func (r *ReadThroughCache[K, V]) Enabled() bool {
	return r.ttl > 0
}

func (r *ReadThroughCache[K, V]) Get(ctx context.Context, key K) (V, error) {
	if !r.Enabled() {
		return r.fn(ctx, key)
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, nil
	}

	value, err := r.fn(ctx, key)
	if err != nil {
		return value, err
	}

	r.cache.Set(ctx, key, value, r.ttl)
	return value, nil
}

// Invalidate drops the cached values for keys.
func (r *ReadThroughCache[K, V]) Invalidate(ctx context.Context, keys ...K) {
	if !r.Enabled() || len(keys) == 0 {
		return
	}
	r.cache.Delete(ctx, keys...)
}

// Reset drops every cached value.
func (r *ReadThroughCache[K, V]) Reset(ctx context.Context) {
	if !r.Enabled() {
		return
	}
	r.cache.Flush(ctx)
}
