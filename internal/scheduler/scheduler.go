// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic background jobs, such as polling
// translation providers for the status of submitted orders.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/ocms-translations/internal/model"
	"github.com/olegiv/ocms-translations/internal/store"
)

// StatusPollJob is the name of the order status polling job.
const StatusPollJob = "order-status"

// DefaultStatusPollSchedule polls every ten minutes.
const DefaultStatusPollSchedule = "*/10 * * * *"

// Job is a unit of scheduled work.
type Job func(ctx context.Context) error

// StatusPoller checks the provider status of submitted orders.
type StatusPoller interface {
	PollStatuses(ctx context.Context) (int, error)
}

// Scheduler wraps a cron instance with a job registry.
type Scheduler struct {
	cron     *cron.Cron
	registry *Registry
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
}

// New creates a scheduler. db may be nil, in which case schedule overrides
// are not persisted.
func New(db *sql.DB, logger *slog.Logger) *Scheduler {
	c := cron.New(cron.WithParser(parser))
	var queries *store.Queries
	if db != nil {
		queries = store.New(db)
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron:     c,
		registry: NewRegistry(c, queries, logger),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Registry returns the job registry.
func (s *Scheduler) Registry() *Registry {
	return s.registry
}

// Add schedules job under name. Runs of the same job never overlap.
func (s *Scheduler) Add(name, description, schedule string, job Job) error {
	var running atomic.Bool
	run := func() error {
		if !running.CompareAndSwap(false, true) {
			s.logger.Debug("scheduled job still running, skipping", "job", name)
			return nil
		}
		defer running.Store(false)

		start := time.Now()
		if err := job(s.ctx); err != nil {
			s.logger.Error("scheduled job failed",
				"category", model.EventCategorySystem,
				"job", name,
				"error", err)
			return err
		}
		s.logger.Debug("scheduled job finished", "job", name, "duration", time.Since(start))
		return nil
	}
	return s.registry.Add(name, description, schedule, func() { _ = run() }, run)
}

// AddStatusPolling schedules p to poll order statuses.
func (s *Scheduler) AddStatusPolling(p StatusPoller, schedule string) error {
	if schedule == "" {
		schedule = DefaultStatusPollSchedule
	}
	return s.Add(StatusPollJob, "Poll providers for the status of submitted orders", schedule, func(ctx context.Context) error {
		checked, err := p.PollStatuses(ctx)
		if checked > 0 {
			s.logger.Info("order statuses polled", "orders", checked)
		}
		return err
	})
}

// Start begins running scheduled jobs.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}
