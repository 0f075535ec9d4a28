// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"os"
	"testing"
	"time"
)

// skipIfNoRedis skips the test if Redis is not configured.
func skipIfNoRedis(t *testing.T) string {
	t.Helper()
	url := os.Getenv("STUDIO_TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping Redis tests: STUDIO_TEST_REDIS_URL not set")
	}
	return url
}

func newTestRedisCache(t *testing.T) *RedisCache {
	t.Helper()
	opts := DefaultRedisCacheOptions()
	opts.URL = skipIfNoRedis(t)
	opts.Prefix = "studio-test:"
	opts.DefaultTTL = time.Minute

	c, err := NewRedisCache(opts)
	if err != nil {
		t.Fatalf("failed to create Redis cache: %v", err)
	}
	t.Cleanup(func() {
		_ = c.Clear(context.Background())
		_ = c.Close()
	})
	_ = c.Clear(context.Background())
	return c
}

func TestRedisCache_Basic(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()

	if err := cache.Set(ctx, "key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := cache.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get returned %q, want value", got)
	}

	if has, err := cache.Has(ctx, "key"); err != nil || !has {
		t.Errorf("Has = %v, %v", has, err)
	}

	if err := cache.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := cache.Get(ctx, "key"); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCache_DeleteByPrefix(t *testing.T) {
	cache := newTestRedisCache(t)
	ctx := context.Background()

	_ = cache.Set(ctx, KeyPublicServices, []byte("1"), 0)
	_ = cache.Set(ctx, KeyServiceCategories, []byte("2"), 0)
	_ = cache.Set(ctx, KeyBookingStatuses, []byte("3"), 0)

	if err := cache.DeleteByPrefix(ctx, PrefixServices); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}
	if has, _ := cache.Has(ctx, KeyPublicServices); has {
		t.Error("services key survived prefix delete")
	}
	if has, _ := cache.Has(ctx, KeyBookingStatuses); !has {
		t.Error("bookings key removed by services prefix")
	}
}

func TestRedisCache_Ping(t *testing.T) {
	cache := newTestRedisCache(t)
	if err := cache.Ping(context.Background()); err != nil {
		t.Errorf("Ping: %v", err)
	}
}

func TestNewRedisCache_RequiresURL(t *testing.T) {
	if _, err := NewRedisCache(RedisCacheOptions{}); err == nil {
		t.Error("expected error for empty URL")
	}
}
