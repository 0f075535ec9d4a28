// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/olegiv/studio-site/internal/cache"
	"github.com/olegiv/studio-site/internal/model"
	"github.com/olegiv/studio-site/internal/store"
	"github.com/olegiv/studio-site/internal/testutil"
)

func TestNew(t *testing.T) {
	logger := testutil.TestLoggerSilent()

	s := New(logger)
	if s == nil {
		t.Fatal("New() returned nil")
	}
	if s.cron == nil {
		t.Error("New() scheduler has nil cron")
	}
	if s.logger != logger {
		t.Error("New() scheduler has wrong logger")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	if err := s.Add(Job{Name: "noop", Schedule: "@hourly", Run: func(context.Context) error { return nil }}); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	s.Start()
	s.Stop()
}

func TestAdd_Validation(t *testing.T) {
	noop := func(context.Context) error { return nil }

	tests := []struct {
		name    string
		job     Job
		wantErr bool
	}{
		{"five fields", Job{Name: "a", Schedule: "*/10 * * * *", Run: noop}, false},
		{"descriptor", Job{Name: "b", Schedule: "@daily", Run: noop}, false},
		{"bad expression", Job{Name: "c", Schedule: "every day", Run: noop}, true},
		{"six fields", Job{Name: "d", Schedule: "0 */10 * * * *", Run: noop}, true},
		{"no run function", Job{Name: "e", Schedule: "@daily"}, true},
	}

	s := New(testutil.TestLoggerSilent())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Add(tt.job)
			if (err != nil) != tt.wantErr {
				t.Errorf("Add() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if err := s.Add(Job{Name: "a", Schedule: "@daily", Run: noop}); err == nil {
		t.Error("duplicate name should be rejected")
	}
}

func TestTriggerNow_RecordsOutcome(t *testing.T) {
	s := New(testutil.TestLoggerSilent())
	failure := errors.New("backend down")
	_ = s.Add(Job{Name: "ok", Schedule: "@daily", Run: func(context.Context) error { return nil }})
	_ = s.Add(Job{Name: "broken", Schedule: "@daily", Run: func(context.Context) error { return failure }})

	if err := s.TriggerNow("ok"); err != nil {
		t.Errorf("TriggerNow(ok) error = %v", err)
	}
	if err := s.TriggerNow("broken"); !errors.Is(err, failure) {
		t.Errorf("TriggerNow(broken) error = %v, want %v", err, failure)
	}
	if err := s.TriggerNow("missing"); err == nil {
		t.Error("TriggerNow(missing) should fail")
	}

	jobs := s.Jobs()
	if len(jobs) != 2 || jobs[0].Name != "broken" || jobs[1].Name != "ok" {
		t.Fatalf("Jobs() = %+v", jobs)
	}
	if jobs[0].LastError != "backend down" || jobs[0].LastRun.IsZero() {
		t.Errorf("broken job info = %+v", jobs[0])
	}
	if jobs[1].LastError != "" || jobs[1].LastRun.IsZero() {
		t.Errorf("ok job info = %+v", jobs[1])
	}
}

func TestPruneEvents(t *testing.T) {
	db := testutil.TestMemoryDB(t)
	queries := store.New(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)

	for _, age := range []time.Duration{time.Hour, 40 * 24 * time.Hour, 90 * 24 * time.Hour} {
		_, err := queries.CreateEvent(ctx, store.CreateEventParams{
			Level:     model.EventLevelWarning,
			Category:  model.EventCategorySystem,
			Message:   "test",
			Metadata:  "{}",
			CreatedAt: now.Add(-age),
		})
		if err != nil {
			t.Fatalf("CreateEvent() error = %v", err)
		}
	}

	job := PruneEvents(queries, 30*24*time.Hour, func() time.Time { return now })
	if err := job.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	count, err := queries.CountEvents(ctx)
	if err != nil {
		t.Fatalf("CountEvents() error = %v", err)
	}
	if count != 1 {
		t.Errorf("events left = %d, want 1", count)
	}
}

type fakeServices struct {
	services   []model.Service
	categories []string
	err        error
}

func (f *fakeServices) ListPublicServices(context.Context) ([]model.Service, error) {
	return f.services, f.err
}

func (f *fakeServices) ServiceCategories(context.Context) ([]string, error) {
	return f.categories, f.err
}

func TestWarmServices(t *testing.T) {
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	qc := cache.NewQueryCache(mc, 0, testutil.TestLoggerSilent())
	src := &fakeServices{
		services:   []model.Service{{ID: 1, Title: "Weddings"}},
		categories: []string{"photography"},
	}

	if err := WarmServices(qc, src).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	for _, key := range []string{cache.KeyPublicServices, cache.KeyServiceCategories} {
		ok, err := mc.Has(context.Background(), key)
		if err != nil || !ok {
			t.Errorf("%s not cached (err=%v)", key, err)
		}
	}
}

func TestWarmServices_BackendFailure(t *testing.T) {
	mc := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	qc := cache.NewQueryCache(mc, 0, testutil.TestLoggerSilent())

	err := WarmServices(qc, &fakeServices{err: errors.New("unreachable")}).Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if mc.Len() != 0 {
		t.Errorf("cache should stay empty, has %d entries", mc.Len())
	}
}
