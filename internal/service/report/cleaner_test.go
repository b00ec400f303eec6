package report

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"PowerPos/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	l, err := logger.New(&logger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return l
}

func touch(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("Local Time,Volume"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	old := time.Now().Add(-age)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	return path
}

func TestCleanupDeletesExpired(t *testing.T) {
	dir := t.TempDir()
	expired := touch(t, dir, "PowerPosition_20240101_0100.csv", 35*24*time.Hour)
	fresh := touch(t, dir, "PowerPosition_20240201_0100.csv", time.Minute)

	c := NewCleaner(dir, newTestLogger(t))
	deleted, err := c.Cleanup(30 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected 1 deletion, got %d", deleted)
	}
	if _, err := os.Stat(expired); !os.IsNotExist(err) {
		t.Fatalf("expired file still present")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Fatalf("fresh file removed: %v", err)
	}
}

func TestCleanupIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	other := touch(t, dir, "notes.txt", 365*24*time.Hour)

	c := NewCleaner(dir, newTestLogger(t))
	deleted, err := c.Cleanup(24 * time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected no deletions, got %d", deleted)
	}
	if _, err := os.Stat(other); err != nil {
		t.Fatalf("unrelated file removed: %v", err)
	}
}

func TestCleanupErrorReports(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "PowerPosition_20240101_0100_ERROR.csv", 48*time.Hour)

	c := NewCleaner(dir, newTestLogger(t))
	deleted, err := c.Cleanup(24 * time.Hour)
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if deleted != 1 {
		t.Fatalf("expected error report to be deleted, got %d", deleted)
	}
}

func TestCleanupMissingDirectory(t *testing.T) {
	c := NewCleaner(filepath.Join(t.TempDir(), "does-not-exist"), newTestLogger(t))
	deleted, err := c.Cleanup(24 * time.Hour)
	if err != nil {
		t.Fatalf("expected no error for missing dir, got %v", err)
	}
	if deleted != 0 {
		t.Fatalf("expected 0 deletions, got %d", deleted)
	}
}
