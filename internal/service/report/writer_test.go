package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"PowerPos/internal/domain/models"
)

func TestWriteNormalCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	w := NewWriter(dir, newTestLogger(t))

	vols := models.NewAggregatedVolumes()
	vols.Add("23:00", 1.5)
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)

	name, err := w.WriteNormal(vols, at)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if name != "PowerPosition_20240115_1430.csv" {
		t.Fatalf("unexpected name %s", name)
	}

	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "Local Time,Volume\n23:00,1.5" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestWriteErrorReport(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir, newTestLogger(t))

	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	name, err := w.WriteError(emptyFallback(), &ErrorInfo{Category: "provider", Message: "down"}, at)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasSuffix(name, "_ERROR.csv") {
		t.Fatalf("unexpected name %s", name)
	}

	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(b)
	if !strings.Contains(content, "# ERROR: provider: down") {
		t.Fatalf("missing error header in %q", content)
	}
	if !strings.Contains(content, "23:00,ERROR") {
		t.Fatalf("missing placeholder row in %q", content)
	}
}

// emptyFallback builds the canonical bucket set without importing usecase,
// keeping this package's tests self-contained.
func emptyFallback() *models.AggregatedVolumes {
	vols := models.NewAggregatedVolumes()
	for i := 1; i <= models.CanonicalPeriods; i++ {
		vols.Add(models.BucketLabel(i), 0)
	}
	return vols
}
