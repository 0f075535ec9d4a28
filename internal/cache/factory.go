// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Backend names reported by New.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Config holds configuration for cache creation.
type Config struct {
	// RedisURL selects Redis when set. Example: redis://localhost:6379/0
	RedisURL string

	// Prefix is the Redis key prefix.
	Prefix string

	DefaultTTL      time.Duration
	MaxSize         int // memory cache entry limit (0 = unlimited)
	CleanupInterval time.Duration
}

// New creates a Redis cache when configured and reachable, otherwise a
// memory cache. The returned name identifies the backend in use.
func New(cfg Config, logger *slog.Logger) (Cache, string) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RedisURL != "" {
		opts := DefaultRedisCacheOptions()
		opts.URL = cfg.RedisURL
		if cfg.Prefix != "" {
			opts.Prefix = cfg.Prefix
		}
		opts.DefaultTTL = cfg.DefaultTTL

		rc, err := NewRedisCache(opts)
		if err == nil {
			logger.Info("using redis cache", "prefix", opts.Prefix)
			return rc, BackendRedis
		}
		logger.Warn("redis cache unavailable, falling back to memory", "category", "cache", "error", err)
	}

	interval := cfg.CleanupInterval
	if interval <= 0 {
		interval = time.Minute
	}
	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      cfg.DefaultTTL,
		MaxSize:         cfg.MaxSize,
		CleanupInterval: interval,
	}), BackendMemory
}
