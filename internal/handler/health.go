// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/olegiv/studio-site/internal/apiclient"
	"github.com/olegiv/studio-site/internal/cache"
)

// Health status values.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// HealthCheckTimeout bounds each dependency check.
const HealthCheckTimeout = 3 * time.Second

// HealthHandler handles health check requests.
type HealthHandler struct {
	db        *sql.DB
	api       *apiclient.Client
	cache     cache.Cache
	version   string
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(db *sql.DB, api *apiclient.Client, c cache.Cache, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		api:       api,
		cache:     c,
		version:   version,
		startTime: time.Now(),
	}
}

// HealthStatus represents the overall health status.
type HealthStatus struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents a single health check result.
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Health handles GET /health. The database is required; the backend and the
// cache only degrade the status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks := map[string]Check{
		"database": h.runCheck(r.Context(), func(ctx context.Context) error { return h.db.PingContext(ctx) }),
		"backend": h.runCheck(r.Context(), func(ctx context.Context) error {
			_, err := h.api.CheckAdmin(ctx)
			return err
		}),
		"cache": h.runCheck(r.Context(), func(ctx context.Context) error {
			_, err := h.cache.Has(ctx, "health")
			return err
		}),
	}

	status := StatusHealthy
	code := http.StatusOK
	switch {
	case checks["database"].Status != StatusHealthy:
		status = StatusUnhealthy
		code = http.StatusServiceUnavailable
	case checks["backend"].Status != StatusHealthy || checks["cache"].Status != StatusHealthy:
		status = StatusDegraded
	}

	resp := HealthStatus{
		Status:    status,
		Timestamp: time.Now().UTC(),
		Uptime:    strings.TrimSpace(humanize.RelTime(h.startTime, time.Now(), "", "")),
		Version:   h.version,
		Checks:    checks,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(resp)
}

func (h *HealthHandler) runCheck(ctx context.Context, fn func(context.Context) error) Check {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	start := time.Now()
	if err := fn(ctx); err != nil {
		return Check{Status: StatusUnhealthy, Message: err.Error()}
	}
	return Check{Status: StatusHealthy, Latency: time.Since(start).Round(time.Microsecond).String()}
}
