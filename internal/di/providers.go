package di

import (
	"context"
	"fmt"
	"time"

	"PowerPos/internal/domain/repository"
	"PowerPos/internal/handler/api"
	internalrepo "PowerPos/internal/repository"
	"PowerPos/internal/service/heartbeat"
	"PowerPos/internal/service/powertrade"
	"PowerPos/internal/service/report"
	"PowerPos/internal/usecase"
	"PowerPos/pkg/cache"
	pkgch "PowerPos/pkg/clickhouse"
	"PowerPos/pkg/config"
	xhttp "PowerPos/pkg/http"
	pkgkafka "PowerPos/pkg/kafka"
	"PowerPos/pkg/logger"
	"PowerPos/pkg/metrics"
	"PowerPos/pkg/server"
	"PowerPos/pkg/util"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	l, err := logger.New(&logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics(l *logger.Logger) repository.Metrics {
	return metrics.New(l)
}

// ProvideClickHouseClient creates a ClickHouse client when the trades
// provider is backed by ClickHouse. Returns nil for the HTTP provider.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.Provider.Type != "clickhouse" {
		return nil, nil
	}
	ch := cfg.Provider.ClickHouse
	client, err := pkgch.NewClient(
		pkgch.WithHost(ch.Host),
		pkgch.WithPort(ch.Port),
		pkgch.WithDatabase(ch.Database),
		pkgch.WithCredentials(ch.User, ch.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithTimeouts(ch.DialTimeout, ch.ReadTimeout, ch.WriteTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	if ch.InitSchema {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		stmts := []string{
			fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", ch.Database),
			fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (trade_id String, trade_date Date, period UInt16, volume Float64) ENGINE=MergeTree ORDER BY (trade_date, trade_id, period)", ch.Table),
		}
		if err := client.InitSchema(ctx, stmts); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("clickhouse schema: %w", err)
		}
	}

	return client, nil
}

// ProvideTradeProvider selects the trades source by provider.type.
func ProvideTradeProvider(cfg *config.Config, chClient *pkgch.Client) (repository.TradeProvider, error) {
	switch cfg.Provider.Type {
	case "clickhouse":
		return internalrepo.NewClickHouseProvider(chClient.DB(), cfg.Provider.ClickHouse.Table), nil
	default:
		h := cfg.Provider.HTTP
		return powertrade.New(h.BaseURL, h.APIKey, h.Timeout), nil
	}
}

// ProvideKafkaProducer creates a Kafka producer when outcome events are
// enabled. Returns nil otherwise.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Events.Enabled {
		return nil, nil
	}
	k := cfg.Events.Kafka
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(k.Brokers),
		pkgkafka.WithCompression(k.Compression),
		pkgkafka.WithRequiredAcks(k.RequiredAcks),
		pkgkafka.WithMaxAttempts(k.MaxAttempts),
		pkgkafka.WithTimeouts(k.WriteTimeout, k.WriteTimeout),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideEventPublisher creates the cycle-outcome publisher. nil when
// events are disabled; the extractor treats nil as "do not publish".
func ProvideEventPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.EventPublisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaPublisher(producer, cfg.Events.Kafka.Topic)
}

// ProvideRedisCache connects to Redis when the heartbeat is enabled.
func ProvideRedisCache(cfg *config.Config) (*cache.RedisCache, error) {
	if !cfg.Heartbeat.Enabled {
		return nil, nil
	}
	r := cfg.Heartbeat.Redis
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(r.Host),
		cache.WithRedisPort(r.Port),
		cache.WithRedisPassword(r.Password),
		cache.WithRedisDB(r.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}
	return rc, nil
}

// ProvideHealthMonitor returns the Redis heartbeat monitor, or the
// log-only fallback when the heartbeat is disabled.
func ProvideHealthMonitor(rc *cache.RedisCache, cfg *config.Config, l *logger.Logger) repository.HealthMonitor {
	if rc == nil {
		return heartbeat.NewLogMonitor(l)
	}
	r := cfg.Heartbeat.Redis
	return heartbeat.NewRedisMonitor(rc, r.Key, r.TTL, l)
}

// ProvideReportWriter creates the CSV report writer.
func ProvideReportWriter(cfg *config.Config, l *logger.Logger) *report.Writer {
	return report.NewWriter(cfg.Extract.OutputDir, l)
}

// ProvideReportCleaner creates the retention cleaner.
func ProvideReportCleaner(cfg *config.Config, l *logger.Logger) *report.Cleaner {
	return report.NewCleaner(cfg.Extract.OutputDir, l)
}

// ProvideExtractor creates the extraction worker.
func ProvideExtractor(
	provider repository.TradeProvider,
	writer *report.Writer,
	m repository.Metrics,
	health repository.HealthMonitor,
	events repository.EventPublisher,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Extractor {
	zone, ok := util.LoadTradingZone(cfg.Extract.Timezone)
	if !ok {
		l.Warn("trading timezone unavailable, using UTC",
			logger.String("timezone", cfg.Extract.Timezone))
	}
	return usecase.NewExtractor(
		provider, writer, m, health, events, l,
		zone, cfg.Extract.RetryCount, cfg.RetryBaseDelay(),
	)
}

// ProvideScheduler creates the dual-loop scheduler.
func ProvideScheduler(
	extractor *usecase.Extractor,
	cleaner *report.Cleaner,
	m repository.Metrics,
	l *logger.Logger,
	cfg *config.Config,
) *usecase.Scheduler {
	return usecase.NewScheduler(extractor, cleaner, m, l, usecase.SchedulerConfig{
		ExtractInterval: cfg.ExtractInterval(),
		CleanupEnabled:  cfg.CleanupEnabled(),
		Retention:       cfg.Retention(),
		CleanupInterval: cfg.CleanupInterval(),
		CheckInterval:   cfg.CleanupCheckInterval(),
	})
}

// ProvideStatusHandler creates the operator HTTP surface.
func ProvideStatusHandler(l *logger.Logger, s *usecase.Scheduler, cfg *config.Config) xhttp.Handler {
	return api.NewStatusHandler(l, s, cfg.Extract.OutputDir)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	scheduler *usecase.Scheduler,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	rc *cache.RedisCache,
) *server.App {
	return server.New(cfg, l, scheduler, handler, chClient, producer, rc)
}
