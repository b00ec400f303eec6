package usecase

import (
	"context"
	"os"
	"testing"
	"time"

	"PowerPos/internal/domain/models"
	"PowerPos/internal/service/report"
)

func writeAged(path string, age time.Duration) error {
	if err := os.WriteFile(path, []byte("Local Time,Volume"), 0o644); err != nil {
		return err
	}
	old := time.Now().Add(-age)
	return os.Chtimes(path, old, old)
}

func newTestScheduler(t *testing.T, dir string, p *fakeProvider, m *fakeMetrics, cfg SchedulerConfig) *Scheduler {
	t.Helper()
	l := newTestLogger(t)
	e := NewExtractor(p, report.NewWriter(dir, l), m, &fakeHealth{}, nil, l, time.UTC, 0, time.Millisecond)
	return NewScheduler(e, report.NewCleaner(dir, l), m, l, cfg)
}

func TestSchedulerRunsImmediately(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{trades: []*models.Trade{{Periods: []models.Period{{Index: 1, Volume: 1}}}}}
	m := &fakeMetrics{}
	s := newTestScheduler(t, dir, p, m, SchedulerConfig{
		ExtractInterval: time.Hour,
		CheckInterval:   time.Hour,
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for p.callCount() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if p.callCount() == 0 {
		t.Fatalf("expected an immediate extraction cycle")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	st := s.Status()
	if st.TotalRuns < 1 || st.LastOutcome != "ok" {
		t.Fatalf("unexpected status %+v", st)
	}
	if m.summaries != 1 {
		t.Fatalf("expected metrics summary on stop, got %d", m.summaries)
	}
}

func TestSchedulerReportsFallbackAsFailed(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{
		failures: -1,
		err:      models.NewProviderError("provider", "upstream down"),
	}
	m := &fakeMetrics{}
	s := newTestScheduler(t, dir, p, m, SchedulerConfig{
		ExtractInterval: time.Hour,
		CheckInterval:   time.Hour,
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for s.Status().TotalRuns == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}

	st := s.Status()
	if st.LastOutcome != "failed" {
		t.Fatalf("fallback cycle reported as %q, want failed", st.LastOutcome)
	}
	if st.LastTradeCount != 0 {
		t.Fatalf("unexpected trade count %d", st.LastTradeCount)
	}
	if n := len(reportFiles(t, dir, "PowerPosition_*_ERROR.csv")); n != 1 {
		t.Fatalf("expected 1 error report, got %d", n)
	}
}

func TestSchedulerPeriodicTicks(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{}
	m := &fakeMetrics{}
	s := newTestScheduler(t, dir, p, m, SchedulerConfig{
		ExtractInterval: 10 * time.Millisecond,
		CheckInterval:   time.Hour,
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for p.callCount() < 3 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if p.callCount() < 3 {
		t.Fatalf("expected at least 3 cycles, got %d", p.callCount())
	}
}

func TestSchedulerStopPrompt(t *testing.T) {
	dir := t.TempDir()
	p := &fakeProvider{}
	s := newTestScheduler(t, dir, p, &fakeMetrics{}, SchedulerConfig{
		ExtractInterval: time.Hour,
		CheckInterval:   time.Hour,
	})

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	time.Sleep(20 * time.Millisecond)

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Fatalf("stop too slow: %v", elapsed)
	}
}

func TestCleanupCadenceSinglePass(t *testing.T) {
	dir := t.TempDir()
	touchOld := func(name string) {
		p := dir + "/" + name
		if err := writeAged(p, 48*time.Hour); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	touchOld("PowerPosition_20240101_0100.csv")

	m := &fakeMetrics{}
	s := newTestScheduler(t, dir, &fakeProvider{}, m, SchedulerConfig{
		CleanupEnabled:  true,
		Retention:       24 * time.Hour,
		CleanupInterval: time.Hour,
		CheckInterval:   time.Minute,
		ExtractInterval: time.Hour,
	})

	last, ran := s.runCleanupIfDue(time.Time{})
	if !ran {
		t.Fatalf("expected first check to run a pass")
	}
	if m.deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", m.deleted)
	}

	if _, ran := s.runCleanupIfDue(last); ran {
		t.Fatalf("second check within interval must not run")
	}
	if m.deleted != 1 {
		t.Fatalf("deletion pass ran twice")
	}
}

func TestCleanupDisabledLoopExits(t *testing.T) {
	dir := t.TempDir()
	s := newTestScheduler(t, dir, &fakeProvider{}, &fakeMetrics{}, SchedulerConfig{
		ExtractInterval: time.Hour,
		CleanupEnabled:  false,
		CheckInterval:   time.Millisecond,
	})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("stop: %v", err)
	}
}
