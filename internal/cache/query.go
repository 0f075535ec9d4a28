// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"
)

// Query keys and the resource prefixes they are invalidated by.
const (
	PrefixServices = "services:"
	PrefixBookings = "bookings:"

	KeyPublicServices    = PrefixServices + "public"
	KeyServiceCategories = PrefixServices + "categories"
	KeyBookingStatuses   = PrefixBookings + "statuses"
)

// Key builds a query key from a resource key and its filter parameters.
func Key(resource string, params url.Values) string {
	if len(params) == 0 {
		return resource
	}
	return resource + "?" + params.Encode()
}

// QueryCache stores JSON-encoded query results. Concurrent misses on the
// same key share one load.
type QueryCache struct {
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	group  singleflight.Group
}

// NewQueryCache wraps c. A zero ttl uses the cache's default.
func NewQueryCache(c Cache, ttl time.Duration, logger *slog.Logger) *QueryCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryCache{cache: c, ttl: ttl, logger: logger}
}

// Cache returns the underlying cache.
func (q *QueryCache) Cache() Cache {
	return q.cache
}

// Invalidate drops every cached query under prefix.
func (q *QueryCache) Invalidate(ctx context.Context, prefix string) {
	if err := q.cache.DeleteByPrefix(ctx, prefix); err != nil {
		q.logger.Warn("cache invalidation failed", "category", "cache", "prefix", prefix, "error", err)
	}
}

// Load returns the cached result for key, or runs load and caches its result.
// Cache failures never fail the query; load errors are not cached.
func Load[T any](ctx context.Context, q *QueryCache, key string, load func(context.Context) (T, error)) (T, error) {
	var zero T

	data, err := q.cache.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		q.logger.Debug("discarding undecodable cache entry", "key", key)
	case !errors.Is(err, ErrCacheMiss):
		q.logger.Debug("cache read failed", "key", key, "error", err)
	}

	res, err, _ := q.group.Do(key, func() (any, error) {
		v, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(v); err == nil {
			if err := q.cache.Set(ctx, key, data, q.ttl); err != nil {
				q.logger.Debug("cache write failed", "key", key, "error", err)
			}
		}
		return v, nil
	})
	if err != nil {
		return zero, err
	}
	v, ok := res.(T)
	if !ok {
		return zero, fmt.Errorf("cache: unexpected result type %T for %s", res, key)
	}
	return v, nil
}

// Refresh runs load and replaces the cached result for key.
func Refresh[T any](ctx context.Context, q *QueryCache, key string, load func(context.Context) (T, error)) (T, error) {
	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return v, fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := q.cache.Set(ctx, key, data, q.ttl); err != nil {
		return v, fmt.Errorf("caching %s: %w", key, err)
	}
	return v, nil
}
