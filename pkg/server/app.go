package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"PowerPos/internal/usecase"
	"PowerPos/pkg/cache"
	pkgch "PowerPos/pkg/clickhouse"
	"PowerPos/pkg/config"
	xhttp "PowerPos/pkg/http"
	pkgkafka "PowerPos/pkg/kafka"
	applogger "PowerPos/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	scheduler  *usecase.Scheduler
	handler    xhttp.Handler
	httpServer *xhttp.Server

	chClient *pkgch.Client
	producer *pkgkafka.Producer
	redis    *cache.RedisCache
}

// New creates a new App instance with all dependencies. chClient, producer
// and redis may be nil when the matching feature is disabled.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	scheduler *usecase.Scheduler,
	handler xhttp.Handler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	redis *cache.RedisCache,
) *App {
	return &App{
		cfg:       cfg,
		logger:    l,
		scheduler: scheduler,
		handler:   handler,
		chClient:  chClient,
		producer:  producer,
		redis:     redis,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetricsLogger(a.logger),
	)

	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	a.logger.Info("scheduler running",
		applogger.String("provider", a.cfg.Provider.Type),
		applogger.String("output_dir", a.cfg.Extract.OutputDir))
	if a.producer != nil {
		a.logger.Info("outcome events enabled",
			applogger.Strings("brokers", a.cfg.Events.Kafka.Brokers),
			applogger.String("topic", a.cfg.Events.Kafka.Topic))
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services. The scheduler is stopped first
// so no report write or publish races the client teardown below.
func (a *App) shutdown() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := a.scheduler.Stop(shutdownCtx); err != nil {
		a.logger.Warn("scheduler stop error", applogger.Error(err))
	}

	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.logger.Warn("kafka producer close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("redis close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
