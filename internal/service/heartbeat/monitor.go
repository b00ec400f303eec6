package heartbeat

import (
	"context"
	"time"

	"PowerPos/pkg/cache"
	"PowerPos/pkg/logger"
)

// RedisMonitor records successful extraction runs as a TTL'd heartbeat key
// in Redis so an external watchdog can alert when the service goes quiet.
// Failures are logged at low severity and never escalated.
type RedisMonitor struct {
	cache  *cache.RedisCache
	key    string
	ttl    time.Duration
	logger *logger.Logger
}

// NewRedisMonitor creates a Redis-backed health monitor.
func NewRedisMonitor(c *cache.RedisCache, key string, ttl time.Duration, l *logger.Logger) *RedisMonitor {
	return &RedisMonitor{cache: c, key: key, ttl: ttl, logger: l}
}

func (m *RedisMonitor) RecordSuccessfulRun() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := m.cache.Set(ctx, m.key, time.Now().UTC().Format(time.RFC3339), m.ttl); err != nil {
		m.logger.Debug("heartbeat update failed", logger.Error(err))
	}
}

// Close releases the Redis connection.
func (m *RedisMonitor) Close() error {
	return m.cache.Close()
}

// LogMonitor is the fallback health monitor used when the Redis heartbeat
// is disabled.
type LogMonitor struct {
	logger *logger.Logger
}

// NewLogMonitor creates a log-only health monitor.
func NewLogMonitor(l *logger.Logger) *LogMonitor {
	return &LogMonitor{logger: l}
}

func (m *LogMonitor) RecordSuccessfulRun() {
	m.logger.Debug("healthy run recorded")
}
