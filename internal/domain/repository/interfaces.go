package repository

import (
	"context"
	"time"

	"PowerPos/internal/domain/models"
)

// TradeProvider supplies the power trades for a trading day. May fail
// transiently; callers own the retry policy.
type TradeProvider interface {
	GetTrades(ctx context.Context, date time.Time) ([]*models.Trade, error)
	Health(ctx context.Context) error
	Close() error
}

// HealthMonitor is notified after every successful extraction cycle.
// Fire-and-forget: implementations must never block or escalate failures.
type HealthMonitor interface {
	RecordSuccessfulRun()
}

// Metrics records extraction and cleanup outcomes.
type Metrics interface {
	RecordSuccessfulRun(tradeCount int)
	RecordFailedRun()
	RecordRetry()
	RecordCleanupDeleted(count int)
	LogMetricsSummary()
}

// EventPublisher pushes cycle outcome events downstream. Best-effort; a
// publish failure never affects the cycle result.
type EventPublisher interface {
	PublishOutcome(ctx context.Context, ev *models.CycleOutcome) error
	Close() error
}
