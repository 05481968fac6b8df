// Package purge runs the periodic delete-all housekeeping job. It invokes
// the same operation exposed to operators via the clear-logs endpoint and
// shares no state with request handling beyond the store itself.
package purge

import (
	"context"
	"log/slog"
	"time"

	"github.com/bitelog/bitelog/internal/storage"
)

// Scheduler deletes all logged entries on a fixed interval. Runs never
// overlap: a single goroutine drives the ticker, and delete-all is
// idempotent anyway.
type Scheduler struct {
	store    storage.Store
	interval time.Duration
	stopCh   chan struct{}
	logger   *slog.Logger
}

// New creates a purge scheduler. An interval of zero or less disables it.
func New(store storage.Store, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:    store,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   slog.Default(),
	}
}

// Start begins the purge loop. It returns immediately; the loop runs until
// Stop is called or ctx is cancelled. A no-op when the scheduler is
// disabled.
func (s *Scheduler) Start(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info("Purge scheduler disabled")
		return
	}

	ticker := time.NewTicker(s.interval)
	s.logger.Info("Purge scheduler started", "interval", s.interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.runOnce(ctx)
			case <-s.stopCh:
				s.logger.Info("Purge scheduler stopped")
				return
			case <-ctx.Done():
				s.logger.Info("Purge scheduler context cancelled")
				return
			}
		}
	}()
}

// Stop terminates the purge loop. Safe to call on a disabled scheduler.
func (s *Scheduler) Stop() {
	close(s.stopCh)
}

func (s *Scheduler) runOnce(ctx context.Context) {
	count, err := s.store.DeleteAllEntries(ctx)
	if err != nil {
		s.logger.Error("Scheduled purge failed", "error", err)
		return
	}
	s.logger.Info("Scheduled purge completed", "deleted", count)
}
