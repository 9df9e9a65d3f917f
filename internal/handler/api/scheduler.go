// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/ocms-translations/internal/scheduler"
)

// ListJobs handles GET /scheduler/jobs.
func (h *Handler) ListJobs(w http.ResponseWriter, _ *http.Request) {
	jobs := []scheduler.JobInfo{}
	if h.scheduler != nil {
		jobs = h.scheduler.List()
	}
	WriteSuccess(w, jobs, &Meta{Total: int64(len(jobs))})
}

// TriggerJob handles POST /scheduler/jobs/{name}/trigger.
func (h *Handler) TriggerJob(w http.ResponseWriter, r *http.Request) {
	if !h.requireScheduler(w) {
		return
	}
	name := chi.URLParam(r, "name")
	if err := h.scheduler.TriggerNow(name); err != nil {
		h.writeServiceError(w, "trigger job", err)
		return
	}
	WriteSuccess(w, map[string]string{"name": name, "status": "triggered"}, nil)
}

// UpdateJobSchedule handles PUT /scheduler/jobs/{name} with {"schedule": "<cron>"}.
func (h *Handler) UpdateJobSchedule(w http.ResponseWriter, r *http.Request) {
	if !h.requireScheduler(w) {
		return
	}
	var in struct {
		Schedule string `json:"schedule"`
	}
	if !decodeBody(w, r, &in) {
		return
	}
	if err := scheduler.ValidateSchedule(in.Schedule); err != nil {
		WriteValidationError(w, map[string]string{"schedule": err.Error()})
		return
	}
	if err := h.scheduler.UpdateSchedule(chi.URLParam(r, "name"), in.Schedule); err != nil {
		h.writeServiceError(w, "update job schedule", err)
		return
	}
	h.ListJobs(w, r)
}

// ResetJobSchedule handles DELETE /scheduler/jobs/{name}, restoring the default schedule.
func (h *Handler) ResetJobSchedule(w http.ResponseWriter, r *http.Request) {
	if !h.requireScheduler(w) {
		return
	}
	if err := h.scheduler.ResetSchedule(chi.URLParam(r, "name")); err != nil {
		h.writeServiceError(w, "reset job schedule", err)
		return
	}
	h.ListJobs(w, r)
}

func (h *Handler) requireScheduler(w http.ResponseWriter) bool {
	if h.scheduler == nil {
		WriteNotFound(w, "scheduler is not running")
		return false
	}
	return true
}
