// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the site's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// JobTimeout bounds a single job run.
const JobTimeout = time.Minute

// Job is a named periodic task.
type Job struct {
	Name        string
	Description string
	Schedule    string // cron expression or descriptor such as @daily
	Run         func(ctx context.Context) error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name        string
	Description string
	Schedule    string
	LastRun     time.Time
	LastError   string
	NextRun     time.Time
}

type registeredJob struct {
	job     Job
	entryID cron.EntryID
	lastRun time.Time
	lastErr error
}

// Scheduler handles scheduled maintenance jobs.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger

	mu   sync.Mutex
	jobs map[string]*registeredJob
}

// parser accepts standard five-field expressions and descriptors.
var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// New creates a new scheduler instance.
func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		cron:   cron.New(cron.WithParser(parser)),
		logger: logger,
		jobs:   make(map[string]*registeredJob),
	}
}

// Add registers a job. Names must be unique.
func (s *Scheduler) Add(job Job) error {
	if job.Run == nil {
		return fmt.Errorf("job %s has no run function", job.Name)
	}
	if _, err := parser.Parse(job.Schedule); err != nil {
		return fmt.Errorf("invalid cron expression %q for job %s: %w", job.Schedule, job.Name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[job.Name]; ok {
		return fmt.Errorf("job already registered: %s", job.Name)
	}

	rj := &registeredJob{job: job}
	id, err := s.cron.AddFunc(job.Schedule, func() { s.run(rj) })
	if err != nil {
		return fmt.Errorf("scheduling job %s: %w", job.Name, err)
	}
	rj.entryID = id
	s.jobs[job.Name] = rj

	s.logger.Debug("registered scheduled job", "name", job.Name, "schedule", job.Schedule)
	return nil
}

func (s *Scheduler) run(rj *registeredJob) error {
	ctx, cancel := context.WithTimeout(context.Background(), JobTimeout)
	defer cancel()

	start := time.Now()
	err := rj.job.Run(ctx)

	s.mu.Lock()
	rj.lastRun = start
	rj.lastErr = err
	s.mu.Unlock()

	if err != nil {
		s.logger.Error("scheduled job failed", "category", "system", "job", rj.job.Name, "error", err)
		return err
	}
	s.logger.Debug("scheduled job finished", "job", rj.job.Name, "duration", time.Since(start))
	return nil
}

// TriggerNow runs a job immediately and returns its error.
func (s *Scheduler) TriggerNow(name string) error {
	s.mu.Lock()
	rj, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job not found: %s", name)
	}

	s.logger.Info("manually triggering job", "name", name)
	return s.run(rj)
}

// Jobs returns every registered job sorted by name.
func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]JobInfo, 0, len(s.jobs))
	for _, rj := range s.jobs {
		info := JobInfo{
			Name:        rj.job.Name,
			Description: rj.job.Description,
			Schedule:    rj.job.Schedule,
			LastRun:     rj.lastRun,
			NextRun:     s.cron.Entry(rj.entryID).Next,
		}
		if rj.lastErr != nil {
			info.LastError = rj.lastErr.Error()
		}
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Start begins running the registered jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
