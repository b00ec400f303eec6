package metrics

import (
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"PowerPos/pkg/logger"
)

// Recorder implements domain.repository.Metrics using Prometheus, plus
// atomic counters so the shutdown summary does not need registry scraping.
type Recorder struct {
	runsTotal       *prometheus.CounterVec
	tradesExtracted prometheus.Counter
	retriesTotal    prometheus.Counter
	cleanupDeleted  prometheus.Counter
	lastSuccess     prometheus.Gauge

	successRuns  atomic.Int64
	failedRuns   atomic.Int64
	retries      atomic.Int64
	trades       atomic.Int64
	filesDeleted atomic.Int64

	logger *logger.Logger
}

// New creates a Prometheus metrics recorder.
func New(l *logger.Logger) *Recorder {
	return &Recorder{
		runsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "powerpos_extraction_runs_total",
				Help: "Total number of extraction cycles by outcome",
			},
			[]string{"outcome"},
		),
		tradesExtracted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powerpos_trades_extracted_total",
				Help: "Total number of trades extracted",
			},
		),
		retriesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powerpos_provider_retries_total",
				Help: "Total number of provider retry attempts",
			},
		),
		cleanupDeleted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "powerpos_cleanup_deleted_files_total",
				Help: "Total number of report files deleted by retention cleanup",
			},
		),
		lastSuccess: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "powerpos_last_successful_run_timestamp_seconds",
				Help: "Unix time of the last successful extraction cycle",
			},
		),
		logger: l,
	}
}

// RecordSuccessfulRun records a completed extraction cycle.
func (r *Recorder) RecordSuccessfulRun(tradeCount int) {
	r.runsTotal.WithLabelValues("success").Inc()
	r.tradesExtracted.Add(float64(tradeCount))
	r.lastSuccess.Set(float64(time.Now().Unix()))
	r.successRuns.Add(1)
	r.trades.Add(int64(tradeCount))
}

// RecordFailedRun records a cycle that ended in fallback or a write failure.
func (r *Recorder) RecordFailedRun() {
	r.runsTotal.WithLabelValues("failure").Inc()
	r.failedRuns.Add(1)
}

// RecordRetry records one provider retry attempt.
func (r *Recorder) RecordRetry() {
	r.retriesTotal.Inc()
	r.retries.Add(1)
}

// RecordCleanupDeleted records files removed by a cleanup pass.
func (r *Recorder) RecordCleanupDeleted(count int) {
	r.cleanupDeleted.Add(float64(count))
	r.filesDeleted.Add(int64(count))
}

// LogMetricsSummary logs lifetime totals. Called once at shutdown.
func (r *Recorder) LogMetricsSummary() {
	r.logger.Info("metrics summary",
		logger.Int64("successful_runs", r.successRuns.Load()),
		logger.Int64("failed_runs", r.failedRuns.Load()),
		logger.Int64("retries", r.retries.Load()),
		logger.Int64("trades_extracted", r.trades.Load()),
		logger.Int64("files_deleted", r.filesDeleted.Load()))
}
