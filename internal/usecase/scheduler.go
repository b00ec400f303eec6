package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"PowerPos/internal/domain/models"
	drepo "PowerPos/internal/domain/repository"
	"PowerPos/internal/service/report"
	"PowerPos/pkg/logger"
)

// SchedulerConfig holds the cadence settings for both periodic loops.
type SchedulerConfig struct {
	ExtractInterval time.Duration
	CleanupEnabled  bool
	Retention       time.Duration
	CleanupInterval time.Duration
	CheckInterval   time.Duration
}

// RunStatus is a snapshot of the scheduler's most recent activity, served
// by the status API.
type RunStatus struct {
	LastRunTime    time.Time
	LastOutcome    string
	LastTradeCount int
	TotalRuns      int
	LastCleanup    time.Time
}

// Scheduler drives two independent periodic activities: the extraction
// cycle and the retention cleanup. They share only a cancellation signal;
// the last-cleanup timestamp has a single writer (the cleanup loop).
type Scheduler struct {
	extractor *Extractor
	cleaner   *report.Cleaner
	metrics   drepo.Metrics
	logger    *logger.Logger
	cfg       SchedulerConfig

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	status RunStatus
}

// NewScheduler creates a scheduler over an extraction worker and a cleaner.
func NewScheduler(extractor *Extractor, cleaner *report.Cleaner, metrics drepo.Metrics, l *logger.Logger, cfg SchedulerConfig) *Scheduler {
	return &Scheduler{
		extractor: extractor,
		cleaner:   cleaner,
		metrics:   metrics,
		logger:    l,
		cfg:       cfg,
	}
}

// Start launches both loops. The extraction loop runs a cycle immediately,
// then once per interval. Start does not block.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.ExtractInterval <= 0 {
		return errors.New("extract interval must be positive")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.wg.Add(2)
	go s.extractionLoop(runCtx)
	go s.cleanupLoop(runCtx)

	s.logger.Info("scheduler started",
		logger.Duration("extract_interval", s.cfg.ExtractInterval),
		logger.Bool("cleanup_enabled", s.cfg.CleanupEnabled))
	return nil
}

// Stop cancels both loops, waits for any in-flight cycle to finish, then
// flushes the metrics summary. Returns ctx.Err if the wait outlives ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.metrics.LogMetricsSummary()
	s.logger.Info("scheduler stopped")
	return nil
}

// Status returns a snapshot of the latest run state.
func (s *Scheduler) Status() RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *Scheduler) extractionLoop(ctx context.Context) {
	defer s.wg.Done()

	s.runCycle(ctx)

	ticker := time.NewTicker(s.cfg.ExtractInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runCycle(ctx)
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	out, err := s.extractor.RunCycle(ctx)

	s.mu.Lock()
	s.status.LastRunTime = time.Now()
	s.status.TotalRuns++
	s.status.LastTradeCount = 0
	if out != nil {
		s.status.LastTradeCount = out.TradeCount
	}
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.status.LastOutcome = "cancelled"
	case err != nil:
		s.status.LastOutcome = "write_failed"
	case out != nil && out.Status == models.CycleFailed:
		s.status.LastOutcome = "failed"
	case out != nil && out.TradeCount > 0:
		s.status.LastOutcome = "ok"
	default:
		s.status.LastOutcome = "ok_empty"
	}
	s.mu.Unlock()

	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
		s.logger.Error("extraction cycle error", logger.Error(err))
	}
}

func (s *Scheduler) cleanupLoop(ctx context.Context) {
	defer s.wg.Done()

	if !s.cfg.CleanupEnabled {
		s.logger.Info("cleanup disabled")
		return
	}

	last := time.Now()
	ticker := time.NewTicker(s.cfg.CheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			last, _ = s.runCleanupIfDue(last)
		}
	}
}

// runCleanupIfDue runs a cleanup pass when the configured interval has
// elapsed since the last pass. Returns the updated last-run timestamp and
// whether a pass ran. A listing failure is logged; the loop keeps ticking.
func (s *Scheduler) runCleanupIfDue(last time.Time) (time.Time, bool) {
	if time.Since(last) < s.cfg.CleanupInterval {
		return last, false
	}

	deleted, err := s.cleaner.Cleanup(s.cfg.Retention)
	if err != nil {
		s.logger.Error("cleanup failed", logger.Error(err))
	} else if deleted > 0 {
		s.metrics.RecordCleanupDeleted(deleted)
	}

	now := time.Now()
	s.mu.Lock()
	s.status.LastCleanup = now
	s.mu.Unlock()
	return now, true
}
