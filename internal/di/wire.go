//go:build wireinject
// +build wireinject

package di

import (
	"PowerPos/pkg/config"
	"PowerPos/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideRedisCache,

		// Repositories
		ProvideTradeProvider,
		ProvideEventPublisher,
		ProvideHealthMonitor,

		// Report pipeline
		ProvideReportWriter,
		ProvideReportCleaner,

		// Use cases
		ProvideExtractor,
		ProvideScheduler,

		// HTTP surface
		ProvideStatusHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
