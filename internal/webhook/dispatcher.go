// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package webhook

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

var (
	// ErrNotRunning is returned when enqueuing on a stopped dispatcher.
	ErrNotRunning = errors.New("callback dispatcher not running")
	// ErrQueueFull is returned when the delivery queue is at capacity.
	ErrQueueFull = errors.New("callback delivery queue full")
)

// Dispatcher delivers callbacks with a pool of workers and retries failed
// deliveries with exponential backoff.
type Dispatcher struct {
	logger  *slog.Logger
	client  *http.Client
	queue   chan *Delivery
	cfg     Config
	wg      sync.WaitGroup
	done    chan struct{}
	mu      sync.RWMutex
	running bool
	// OnDead is called when a delivery is abandoned.
	OnDead func(d Delivery, err error)
}

// Config holds dispatcher configuration.
type Config struct {
	Workers        int // Number of concurrent delivery workers
	QueueSize      int
	MaxAttempts    int
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultConfig returns default dispatcher configuration.
func DefaultConfig() Config {
	return Config{
		Workers:        3,
		QueueSize:      100,
		MaxAttempts:    MaxAttempts,
		InitialBackoff: InitialBackoff,
		MaxBackoff:     MaxBackoff,
	}
}

// NewDispatcher creates a new callback dispatcher.
func NewDispatcher(logger *slog.Logger, cfg Config) *Dispatcher {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = def.MaxAttempts
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = def.InitialBackoff
	}
	if cfg.MaxBackoff <= 0 {
		cfg.MaxBackoff = def.MaxBackoff
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		logger: logger,
		client: &http.Client{
			Timeout: RequestTimeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		queue: make(chan *Delivery, cfg.QueueSize),
		cfg:   cfg,
		done:  make(chan struct{}),
	}
}

// Start starts the dispatcher workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return
	}
	d.running = true
	d.mu.Unlock()

	d.logger.Info("starting callback dispatcher", "workers", d.cfg.Workers)

	for i := 0; i < d.cfg.Workers; i++ {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
}

// Stop stops the dispatcher and waits for workers to finish. Pending retries are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if !d.running {
		d.mu.Unlock()
		return
	}
	d.running = false
	d.mu.Unlock()

	d.logger.Info("stopping callback dispatcher")
	close(d.done)
	d.wg.Wait()
	d.logger.Info("callback dispatcher stopped")
}

// Enqueue queues a delivery for its first attempt.
func (d *Dispatcher) Enqueue(delivery Delivery) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if !d.running {
		return ErrNotRunning
	}
	if delivery.Attempt <= 0 {
		delivery.Attempt = 1
	}
	select {
	case d.queue <- &delivery:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	d.logger.Debug("callback worker started", "worker_id", id)

	for {
		select {
		case <-d.done:
			d.logger.Debug("callback worker stopping", "worker_id", id)
			return
		case <-ctx.Done():
			d.logger.Debug("callback worker context cancelled", "worker_id", id)
			return
		case delivery := <-d.queue:
			d.processDelivery(ctx, delivery)
		}
	}
}

func (d *Dispatcher) processDelivery(ctx context.Context, delivery *Delivery) {
	o := d.post(ctx, delivery)
	if o.delivered() {
		d.logger.Info("callback delivered",
			"request_id", delivery.RequestID,
			"attempt", delivery.Attempt,
			"status_code", o.status)
		return
	}

	if !o.retry || delivery.Attempt >= d.cfg.MaxAttempts {
		d.logger.Warn("callback delivery abandoned",
			"request_id", delivery.RequestID,
			"attempts", delivery.Attempt,
			"status_code", o.status,
			"error", o.err)
		if d.OnDead != nil {
			d.OnDead(*delivery, o.err)
		}
		return
	}

	backoff := calculateBackoff(d.cfg.InitialBackoff, d.cfg.MaxBackoff, delivery.Attempt)
	if o.retryAfter > backoff {
		backoff = min(o.retryAfter, d.cfg.MaxBackoff)
	}
	d.logger.Info("callback delivery scheduled for retry",
		"request_id", delivery.RequestID,
		"attempt", delivery.Attempt,
		"backoff", backoff.String(),
		"error", o.err)

	next := *delivery
	next.Attempt++
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		timer := time.NewTimer(backoff)
		defer timer.Stop()
		select {
		case <-d.done:
			return
		case <-ctx.Done():
			return
		case <-timer.C:
		}
		select {
		case d.queue <- &next:
		case <-d.done:
		}
	}()
}
