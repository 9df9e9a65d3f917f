// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/olegiv/ocms-translations/internal/store"
)

// registeredJob holds metadata about a registered cron job.
// ErrJobNotFound is returned for a job name that was never registered.
var ErrJobNotFound = errors.New("job not found")

type registeredJob struct {
	name            string
	description     string
	defaultSchedule string
	schedule        string // effective schedule (override or default)
	entryID         cron.EntryID
	jobFunc         func()
	triggerFunc     func() error
}

// JobInfo is the public view of a registered job.
type JobInfo struct {
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DefaultSchedule string    `json:"default_schedule"`
	Schedule        string    `json:"schedule"`
	IsOverridden    bool      `json:"is_overridden"`
	LastRun         time.Time `json:"last_run"`
	NextRun         time.Time `json:"next_run"`
}

// Registry tracks the jobs of one cron instance and persists schedule
// overrides so they survive restarts.
type Registry struct {
	cron    *cron.Cron
	queries *store.Queries
	logger  *slog.Logger
	mu      sync.RWMutex
	jobs    map[string]*registeredJob
}

// NewRegistry creates a registry for jobs of c.
func NewRegistry(c *cron.Cron, queries *store.Queries, logger *slog.Logger) *Registry {
	return &Registry{
		cron:    c,
		queries: queries,
		logger:  logger,
		jobs:    make(map[string]*registeredJob),
	}
}

// EffectiveSchedule returns the stored override for name, or defaultSchedule.
func (r *Registry) EffectiveSchedule(name, defaultSchedule string) string {
	if r.queries == nil {
		return defaultSchedule
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	override, err := r.queries.GetSchedulerOverride(ctx, name)
	if err == nil && override != "" && ValidateSchedule(override) == nil {
		return override
	}
	return defaultSchedule
}

// Add schedules jobFunc under name using the effective schedule.
func (r *Registry) Add(name, description, defaultSchedule string, jobFunc func(), triggerFunc func() error) error {
	if err := ValidateSchedule(defaultSchedule); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.jobs[name]; exists {
		return fmt.Errorf("job %q already registered", name)
	}
	schedule := r.EffectiveSchedule(name, defaultSchedule)
	entryID, err := r.cron.AddFunc(schedule, jobFunc)
	if err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	r.jobs[name] = &registeredJob{
		name:            name,
		description:     description,
		defaultSchedule: defaultSchedule,
		schedule:        schedule,
		entryID:         entryID,
		jobFunc:         jobFunc,
		triggerFunc:     triggerFunc,
	}
	r.logger.Debug("registered scheduled job", "name", name, "schedule", schedule)
	return nil
}

// List returns all registered jobs sorted by name.
func (r *Registry) List() []JobInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]JobInfo, 0, len(r.jobs))
	for _, job := range r.jobs {
		entry := r.cron.Entry(job.entryID)
		result = append(result, JobInfo{
			Name:            job.name,
			Description:     job.description,
			DefaultSchedule: job.defaultSchedule,
			Schedule:        job.schedule,
			IsOverridden:    job.schedule != job.defaultSchedule,
			LastRun:         entry.Prev,
			NextRun:         entry.Next,
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// TriggerNow runs a job immediately in the caller's goroutine.
func (r *Registry) TriggerNow(name string) error {
	r.mu.RLock()
	job, ok := r.jobs[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	r.logger.Info("manually triggering job", "name", name)
	return job.triggerFunc()
}

// UpdateSchedule replaces the cron entry of a job and persists the override.
func (r *Registry) UpdateSchedule(name, newSchedule string) error {
	if err := ValidateSchedule(newSchedule); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}

	r.cron.Remove(job.entryID)
	newEntryID, err := r.cron.AddFunc(newSchedule, job.jobFunc)
	if err != nil {
		fallbackID, fallbackErr := r.cron.AddFunc(job.schedule, job.jobFunc)
		if fallbackErr != nil {
			return fmt.Errorf("critical: failed to restore schedule after update failure: %w (original: %w)", fallbackErr, err)
		}
		job.entryID = fallbackID
		return fmt.Errorf("failed to apply new schedule: %w", err)
	}
	job.entryID = newEntryID
	job.schedule = newSchedule

	if r.queries != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.queries.UpsertSchedulerOverride(ctx, store.UpsertSchedulerOverrideParams{
			Name:             name,
			OverrideSchedule: newSchedule,
			UpdatedAt:        time.Now().UTC(),
		}); err != nil {
			r.logger.Error("failed to persist schedule override", "error", err, "name", name)
		}
	}

	r.logger.Info("updated job schedule", "name", name, "schedule", newSchedule)
	return nil
}

// ResetSchedule removes the override and restores the default schedule.
func (r *Registry) ResetSchedule(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	job, ok := r.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if job.schedule == job.defaultSchedule {
		return nil
	}

	r.cron.Remove(job.entryID)
	newEntryID, err := r.cron.AddFunc(job.defaultSchedule, job.jobFunc)
	if err != nil {
		return fmt.Errorf("failed to restore default schedule: %w", err)
	}
	job.entryID = newEntryID
	job.schedule = job.defaultSchedule

	if r.queries != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.queries.DeleteSchedulerOverride(ctx, name); err != nil {
			r.logger.Error("failed to remove schedule override", "error", err, "name", name)
		}
	}

	r.logger.Info("reset job schedule to default", "name", name, "schedule", job.defaultSchedule)
	return nil
}
