package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.yaml", `
logging:
  level: debug
  console: false
clock:
  timezone: UTC
  align: second
  visibility_aware: false
  drift_threshold: 100ms
journal:
  driver: sqlite
  path: ./journal.db
`)

	m := NewManager(path)
	cfg, err := m.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging.level = %q", cfg.Logging.Level)
	}
	if cfg.Logging.Console == nil || *cfg.Logging.Console {
		t.Fatal("logging.console should parse as explicit false")
	}
	if cfg.Clock.Timezone != "UTC" || cfg.Clock.Align != "second" {
		t.Fatalf("clock = %+v", cfg.Clock)
	}
	if cfg.Clock.VisibilityAware == nil || *cfg.Clock.VisibilityAware {
		t.Fatal("clock.visibility_aware should parse as explicit false")
	}
	if cfg.Clock.DriftThreshold != "100ms" {
		t.Fatalf("clock.drift_threshold = %q", cfg.Clock.DriftThreshold)
	}
	if cfg.Journal == nil || cfg.Journal.Driver != "sqlite" {
		t.Fatalf("journal = %+v", cfg.Journal)
	}
	if m.Get() != cfg {
		t.Fatal("Get should return the committed config")
	}
}

func TestLoadJSON(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.json", `{
  "logging": {"level": "info"},
  "clock": {"timezone": "Asia/Seoul"}
}`)

	cfg, err := NewManager(path).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Clock.Timezone != "Asia/Seoul" {
		t.Fatalf("clock.timezone = %q", cfg.Clock.Timezone)
	}
	// Omitted knobs stay at their "unset" defaults.
	if cfg.Clock.VisibilityAware != nil || cfg.Logging.Console != nil {
		t.Fatal("omitted pointer fields should stay nil")
	}
	if cfg.Journal != nil {
		t.Fatal("omitted journal should stay nil")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "config.yaml", `
clock:
  timezone: UTC
  cadence: fast
`)
	if _, err := NewManager(path).Load(); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoggingDefaults(t *testing.T) {
	t.Parallel()
	lc := LoggingConfig{Level: "warn"}.Logx()
	if !lc.Console {
		t.Fatal("console should default to true when omitted")
	}
	off := false
	lc = LoggingConfig{Console: &off}.Logx()
	if lc.Console {
		t.Fatal("explicit console=false should stick")
	}
}

func TestParseDurationField(t *testing.T) {
	t.Parallel()
	if d, err := ParseDurationField("x", " 250ms "); err != nil || d.Milliseconds() != 250 {
		t.Fatalf("got %v, %v", d, err)
	}
	if d, err := ParseDurationField("x", ""); err != nil || d != 0 {
		t.Fatalf("empty: got %v, %v", d, err)
	}
	if _, err := ParseDurationField("x", "-1s"); err == nil {
		t.Fatal("negative duration should error")
	}
	if _, err := ParseDurationField("x", "soon"); err == nil {
		t.Fatal("garbage duration should error")
	}
}

func TestSummarizeConfigChange(t *testing.T) {
	t.Parallel()
	oldCfg := &Config{Clock: ClockConfig{Timezone: "UTC"}}
	newCfg := &Config{Clock: ClockConfig{Timezone: "Asia/Seoul"}}

	changed, _ := SummarizeConfigChange(oldCfg, newCfg)
	if len(changed) != 1 || changed[0] != "clock" {
		t.Fatalf("changed = %v, want [clock]", changed)
	}

	changed, _ = SummarizeConfigChange(newCfg, newCfg)
	if len(changed) != 0 {
		t.Fatalf("changed = %v, want none", changed)
	}
}
