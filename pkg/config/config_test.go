package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if c.Extract.IntervalMinutes != 5 {
		t.Fatalf("interval default %d", c.Extract.IntervalMinutes)
	}
	if c.Extract.RetryCount != 3 {
		t.Fatalf("retry count default %d", c.Extract.RetryCount)
	}
	if c.RetryBaseDelay() != time.Second {
		t.Fatalf("base delay default %v", c.RetryBaseDelay())
	}
	if c.Cleanup.RetentionDays != 30 || c.Cleanup.IntervalHours != 24 {
		t.Fatalf("cleanup defaults %+v", c.Cleanup)
	}
	if !c.CleanupEnabled() {
		t.Fatalf("cleanup should default to enabled")
	}
	if c.Extract.Timezone != "Europe/London" {
		t.Fatalf("timezone default %s", c.Extract.Timezone)
	}
	if c.Provider.Type != "http" {
		t.Fatalf("provider default %s", c.Provider.Type)
	}
}

func TestClampRetention(t *testing.T) {
	path := writeConfig(t, `
cleanup:
  retention_days: 400
  interval_hours: 200
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Cleanup.RetentionDays != 365 {
		t.Fatalf("retention not clamped: %d", c.Cleanup.RetentionDays)
	}
	if c.Cleanup.IntervalHours != 168 {
		t.Fatalf("interval hours not clamped: %d", c.Cleanup.IntervalHours)
	}
}

func TestClampLowerBounds(t *testing.T) {
	path := writeConfig(t, `
cleanup:
  retention_days: -5
  interval_hours: 0
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Cleanup.RetentionDays != 1 || c.Cleanup.IntervalHours != 1 {
		t.Fatalf("lower bounds not clamped: %+v", c.Cleanup)
	}
}

func TestCleanupDisabled(t *testing.T) {
	path := writeConfig(t, `
cleanup:
  enabled: false
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.CleanupEnabled() {
		t.Fatalf("explicit false was overridden by defaulting")
	}
}

func TestInvalidInterval(t *testing.T) {
	path := writeConfig(t, `
extract:
  interval_minutes: -1
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for negative interval")
	}
}

func TestInvalidProviderType(t *testing.T) {
	path := writeConfig(t, `
provider:
  type: carrier-pigeon
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error for provider type")
	}
}

func TestEventsRequireBrokers(t *testing.T) {
	path := writeConfig(t, `
events:
  enabled: true
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error when events enabled without brokers")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, "environment: production\n")
	t.Setenv("POWERPOS_OUTPUT_DIR", "/tmp/reports")
	t.Setenv("POWERPOS_PROVIDER_URL", "http://provider:8000")
	t.Setenv("POWERPOS_EXTRACT_INTERVAL_MIN", "10")

	c, err := LoadWithEnv(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Extract.OutputDir != "/tmp/reports" {
		t.Fatalf("output dir override missing: %s", c.Extract.OutputDir)
	}
	if c.Provider.HTTP.BaseURL != "http://provider:8000" {
		t.Fatalf("provider url override missing")
	}
	if c.ExtractInterval() != 10*time.Minute {
		t.Fatalf("interval override missing: %v", c.ExtractInterval())
	}
}
