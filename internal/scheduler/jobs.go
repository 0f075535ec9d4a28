// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/studio-site/internal/cache"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/store"
)

// Job names.
const (
	JobPruneEvents   = "prune-events"
	JobWarmServices  = "warm-services"
	DefaultPruneAt   = "@daily"
	DefaultWarmEvery = "*/10 * * * *"
)

// PruneEvents returns a job that deletes event log rows older than retention.
func PruneEvents(queries *store.Queries, retention time.Duration, now func() time.Time) Job {
	if now == nil {
		now = time.Now
	}
	return Job{
		Name:        JobPruneEvents,
		Description: "Delete event log entries past the retention window",
		Schedule:    DefaultPruneAt,
		Run: func(ctx context.Context) error {
			cutoff := now().Add(-retention)
			n, err := queries.DeleteEventsBefore(ctx, cutoff)
			if err != nil {
				return fmt.Errorf("pruning events: %w", err)
			}
			if n > 0 {
				slog.Info("pruned event log", "category", model.EventCategorySystem, "deleted", n, "before", cutoff.Format(time.RFC3339))
			}
			return nil
		},
	}
}

// ServiceSource lists the public services and their categories.
type ServiceSource interface {
	ListPublicServices(ctx context.Context) ([]model.Service, error)
	ServiceCategories(ctx context.Context) ([]string, error)
}

// WarmServices returns a job that reloads the cached public services and
// categories so visitors rarely wait on the backend.
func WarmServices(qc *cache.QueryCache, src ServiceSource) Job {
	return Job{
		Name:        JobWarmServices,
		Description: "Refresh the cached public services list",
		Schedule:    DefaultWarmEvery,
		Run: func(ctx context.Context) error {
			if _, err := cache.Refresh(ctx, qc, cache.KeyPublicServices, src.ListPublicServices); err != nil {
				return fmt.Errorf("warming services: %w", err)
			}
			if _, err := cache.Refresh(ctx, qc, cache.KeyServiceCategories, src.ServiceCategories); err != nil {
				return fmt.Errorf("warming service categories: %w", err)
			}
			return nil
		},
	}
}
