package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"PowerPos/pkg/logger"
)

// Cleaner deletes report files past their retention period.
type Cleaner struct {
	dir    string
	logger *logger.Logger
}

// NewCleaner creates a retention cleaner for the given report directory.
func NewCleaner(dir string, l *logger.Logger) *Cleaner {
	return &Cleaner{dir: dir, logger: l}
}

// Cleanup deletes report files whose modification time precedes
// now-retention. A missing directory is a no-op. Per-file failures are
// logged and skipped; only a directory listing failure is returned.
func (c *Cleaner) Cleanup(retention time.Duration) (int, error) {
	if _, err := os.Stat(c.dir); os.IsNotExist(err) {
		c.logger.Debug("cleanup skipped, directory missing", logger.String("dir", c.dir))
		return 0, nil
	}

	matches, err := filepath.Glob(filepath.Join(c.dir, FilePattern))
	if err != nil {
		return 0, fmt.Errorf("list reports: %w", err)
	}

	cutoff := time.Now().Add(-retention)
	deleted := 0
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil {
			c.logger.Warn("cleanup stat failed", logger.String("file", path), logger.Error(err))
			continue
		}
		if !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(path); err != nil {
			c.logger.Warn("cleanup delete failed", logger.String("file", path), logger.Error(err))
			continue
		}
		deleted++
	}

	c.logger.Info("cleanup pass finished",
		logger.Int("scanned", len(matches)),
		logger.Int("deleted", deleted))
	return deleted, nil
}
