package report

import (
	"strings"
	"testing"
	"time"

	"PowerPos/internal/domain/models"
)

func threeBuckets() *models.AggregatedVolumes {
	vols := models.NewAggregatedVolumes()
	vols.Add("23:00", 150)
	vols.Add("00:00", 275.26)
	vols.Add("01:00", -12)
	return vols
}

func TestGenerateFileName(t *testing.T) {
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	if got := GenerateFileName(at, false); got != "PowerPosition_20240115_1430.csv" {
		t.Fatalf("unexpected name %s", got)
	}
	if got := GenerateFileName(at, true); got != "PowerPosition_20240115_1430_ERROR.csv" {
		t.Fatalf("unexpected error name %s", got)
	}
}

func TestSerializeNormal(t *testing.T) {
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	got := Serialize(threeBuckets(), nil, at, at)

	lines := strings.Split(got, "\n")
	want := []string{
		"Local Time,Volume",
		"23:00,150.0",
		"00:00,275.3",
		"01:00,-12.0",
	}
	if len(lines) != len(want) {
		t.Fatalf("unexpected line count %d: %q", len(lines), got)
	}
	for i, w := range want {
		if lines[i] != w {
			t.Fatalf("line %d: got %q want %q", i, lines[i], w)
		}
	}
}

func TestSerializeNoTrailingNewline(t *testing.T) {
	at := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	got := Serialize(threeBuckets(), nil, at, at)
	if strings.HasSuffix(got, "\n") {
		t.Fatalf("unexpected trailing newline")
	}
}

func TestSerializeError(t *testing.T) {
	extract := time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC)
	generated := time.Date(2024, 1, 15, 14, 31, 2, 0, time.UTC)
	got := Serialize(threeBuckets(), &ErrorInfo{Category: "provider", Message: "upstream timeout"}, extract, generated)

	lines := strings.Split(got, "\n")
	if len(lines) != 8 {
		t.Fatalf("unexpected line count %d", len(lines))
	}
	for i := 0; i < 4; i++ {
		if !strings.HasPrefix(lines[i], "#") {
			t.Fatalf("header line %d not a comment: %q", i, lines[i])
		}
	}
	if lines[1] != "# ERROR: provider: upstream timeout" {
		t.Fatalf("unexpected error line %q", lines[1])
	}
	if lines[2] != "# Extract Time: 2024-01-15 14:30:00" {
		t.Fatalf("unexpected extract time line %q", lines[2])
	}
	if lines[3] != "# Generated: 2024-01-15 14:31:02" {
		t.Fatalf("unexpected generated line %q", lines[3])
	}
	if lines[4] != "Local Time,Volume" {
		t.Fatalf("unexpected header %q", lines[4])
	}
	for _, l := range lines[5:] {
		if !strings.HasSuffix(l, ",ERROR") {
			t.Fatalf("expected ERROR placeholder, got %q", l)
		}
	}
}
