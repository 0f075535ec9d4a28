// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestNew_Memory(t *testing.T) {
	c, backend := New(Config{DefaultTTL: time.Minute, MaxSize: 10}, nil)
	defer func() { _ = c.Close() }()

	if backend != BackendMemory {
		t.Errorf("backend = %q, want %q", backend, BackendMemory)
	}
	if _, ok := c.(*MemoryCache); !ok {
		t.Errorf("expected *MemoryCache, got %T", c)
	}
}

func TestNew_RedisFallback(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	// Port 1 is never a Redis server.
	c, backend := New(Config{RedisURL: "redis://127.0.0.1:1/0", DefaultTTL: time.Minute}, logger)
	defer func() { _ = c.Close() }()

	if backend != BackendMemory {
		t.Errorf("backend = %q, want fallback to %q", backend, BackendMemory)
	}
}

func TestNew_InvalidRedisURLFallsBack(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	c, backend := New(Config{RedisURL: "not a url"}, logger)
	defer func() { _ = c.Close() }()

	if backend != BackendMemory {
		t.Errorf("backend = %q, want %q", backend, BackendMemory)
	}
}
