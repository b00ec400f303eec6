package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"PowerPos/internal/domain/models"
	"PowerPos/pkg/logger"
)

// Writer emits report files into the output directory.
type Writer struct {
	dir    string
	logger *logger.Logger
}

// NewWriter creates a report writer for the given output directory.
func NewWriter(dir string, l *logger.Logger) *Writer {
	return &Writer{dir: dir, logger: l}
}

// Dir returns the output directory.
func (w *Writer) Dir() string { return w.dir }

// WriteNormal serializes and writes a normal report. Returns the file name.
func (w *Writer) WriteNormal(vols *models.AggregatedVolumes, extractTime time.Time) (string, error) {
	name := GenerateFileName(extractTime, false)
	if err := w.write(name, Serialize(vols, nil, extractTime, time.Now())); err != nil {
		return "", err
	}
	w.logger.Info("report written",
		logger.String("file", name),
		logger.Int("buckets", vols.Len()))
	return name, nil
}

// WriteError serializes and writes a fallback report for a failed cycle.
func (w *Writer) WriteError(vols *models.AggregatedVolumes, errInfo *ErrorInfo, extractTime time.Time) (string, error) {
	name := GenerateFileName(extractTime, true)
	if err := w.write(name, Serialize(vols, errInfo, extractTime, time.Now())); err != nil {
		return "", err
	}
	w.logger.Warn("error report written",
		logger.String("file", name),
		logger.String("category", errInfo.Category))
	return name, nil
}

func (w *Writer) write(name, content string) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
