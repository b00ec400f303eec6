package usecase

import (
	"context"
	"fmt"
	"time"

	"PowerPos/internal/domain/models"
	drepo "PowerPos/internal/domain/repository"
	"PowerPos/internal/service/report"
	"PowerPos/pkg/logger"
	"PowerPos/pkg/util"
)

// Extractor runs one extraction cycle: fetch trades for the current trading
// day, aggregate, write the report. Provider failures are retried with
// exponential backoff; when the attempt budget is exhausted a fallback
// report is written instead. A cycle never panics out; the only error a
// cycle surfaces is a failed normal-report write.
type Extractor struct {
	provider drepo.TradeProvider
	writer   *report.Writer
	metrics  drepo.Metrics
	health   drepo.HealthMonitor
	events   drepo.EventPublisher
	logger   *logger.Logger

	zone       *time.Location
	maxRetries int
	baseDelay  time.Duration
}

// NewExtractor creates an extraction worker. events may be nil when outcome
// publishing is disabled.
func NewExtractor(
	provider drepo.TradeProvider,
	writer *report.Writer,
	metrics drepo.Metrics,
	health drepo.HealthMonitor,
	events drepo.EventPublisher,
	l *logger.Logger,
	zone *time.Location,
	maxRetries int,
	baseDelay time.Duration,
) *Extractor {
	return &Extractor{
		provider:   provider,
		writer:     writer,
		metrics:    metrics,
		health:     health,
		events:     events,
		logger:     l,
		zone:       zone,
		maxRetries: maxRetries,
		baseDelay:  baseDelay,
	}
}

// RunCycle executes one extraction cycle. The returned outcome carries the
// cycle status and trade count; fallback cycles come back CycleFailed, not
// as an empty success. ctx cancellation is observed before each attempt and
// during backoff sleeps.
func (e *Extractor) RunCycle(ctx context.Context) (out *models.CycleOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("extraction cycle panicked", logger.Any("panic", r))
			e.metrics.RecordFailedRun()
			out, err = &models.CycleOutcome{Status: models.CycleFailed}, nil
		}
	}()

	extractTime := time.Now().In(e.zone)
	date := util.TradeDate(extractTime)
	e.logger.Info("extraction cycle started",
		logger.String("trade_date", date.Format("2006-01-02")))

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		trades, err := e.provider.GetTrades(ctx, date)
		if err == nil {
			return e.finishSuccess(ctx, trades, date, extractTime, attempt+1)
		}

		lastErr = err
		e.logger.Warn("trade fetch failed",
			logger.Int("attempt", attempt+1),
			logger.Int("max_attempts", e.maxRetries+1),
			logger.Error(err))

		if attempt == e.maxRetries {
			break
		}
		e.metrics.RecordRetry()
		if err := e.backoff(ctx, attempt); err != nil {
			return nil, err
		}
	}

	return e.finishFallback(ctx, lastErr, date, extractTime)
}

// backoff sleeps base*2^attempt, returning early on cancellation.
func (e *Extractor) backoff(ctx context.Context, attempt int) error {
	delay := e.baseDelay << uint(attempt)
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (e *Extractor) finishSuccess(ctx context.Context, trades []*models.Trade, date, extractTime time.Time, attempts int) (*models.CycleOutcome, error) {
	vols := Aggregate(trades)
	if vols.Len() == 0 {
		vols = EmptyVolumes()
	}

	name, err := e.writer.WriteNormal(vols, extractTime)
	if err != nil {
		// The one failure mode a cycle surfaces. The scheduler logs it and
		// carries on with the next tick.
		e.metrics.RecordFailedRun()
		return nil, fmt.Errorf("write report: %w", err)
	}

	e.metrics.RecordSuccessfulRun(len(trades))
	e.health.RecordSuccessfulRun()
	out := &models.CycleOutcome{
		TradingDate: date.Format("2006-01-02"),
		ExtractTime: extractTime,
		Status:      models.CycleSucceeded,
		TradeCount:  len(trades),
		Report:      name,
		Attempts:    attempts,
	}
	e.publish(ctx, out)
	e.logger.Info("extraction cycle succeeded",
		logger.Int("trades", len(trades)),
		logger.Int("attempts", attempts))
	return out, nil
}

func (e *Extractor) finishFallback(ctx context.Context, cause error, date, extractTime time.Time) (*models.CycleOutcome, error) {
	category, message := models.ErrorInfo(cause)
	name, err := e.writer.WriteError(ErrorVolumes(), &report.ErrorInfo{Category: category, Message: message}, extractTime)
	if err != nil {
		// Best-effort: a failed fallback write must not take the process down.
		e.logger.Error("fallback report write failed", logger.Error(err))
	}

	e.metrics.RecordFailedRun()
	out := &models.CycleOutcome{
		TradingDate: date.Format("2006-01-02"),
		ExtractTime: extractTime,
		Status:      models.CycleFailed,
		Report:      name,
		ErrorKind:   category,
		Attempts:    e.maxRetries + 1,
	}
	e.publish(ctx, out)
	e.logger.Error("extraction cycle exhausted retries",
		logger.Int("attempts", e.maxRetries+1),
		logger.Error(cause))
	return out, nil
}

func (e *Extractor) publish(ctx context.Context, ev *models.CycleOutcome) {
	if e.events == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := e.events.PublishOutcome(pubCtx, ev); err != nil {
		e.logger.Warn("outcome publish failed", logger.Error(err))
	}
}
