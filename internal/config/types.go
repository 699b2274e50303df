package config

import (
	"clockd/pkg/logx"
)

type Config struct {
	Logging LoggingConfig `json:"logging"`

	// Clock configures the tick service.
	Clock ClockConfig `json:"clock"`

	// Journal enables the optional tick journal. Omitted means disabled.
	Journal *JournalConfig `json:"journal,omitempty"`
}

type LoggingConfig struct {
	Level   string     `json:"level,omitempty"`
	Console *bool      `json:"console,omitempty"` // omitted means true
	File    FileConfig `json:"file,omitempty"`
}

type FileConfig struct {
	Enabled bool   `json:"enabled,omitempty"`
	Path    string `json:"path,omitempty"`
}

// Logx converts the config section into logx's runtime form.
func (l LoggingConfig) Logx() logx.Config {
	console := true
	if l.Console != nil {
		console = *l.Console
	}
	return logx.Config{
		Level:   l.Level,
		Console: console,
		File:    logx.FileConfig{Enabled: l.File.Enabled, Path: l.File.Path},
	}
}

// ClockConfig mirrors clock.Options in config-file form.
//
// All durations are Go duration strings (e.g. "250ms", "1s").
//
// VisibilityAware is a pointer so we can distinguish "omitted" (default true)
// from an explicit false.
type ClockConfig struct {
	Timezone        string `json:"timezone,omitempty"`         // IANA TZ, default "Asia/Seoul"
	Align           string `json:"align,omitempty"`            // none|second|minute, default "minute"
	VisibilityAware *bool  `json:"visibility_aware,omitempty"` // default true
	DriftThreshold  string `json:"drift_threshold,omitempty"`  // default "250ms"
}

// JournalConfig controls the optional tick journal.
//
// Example:
//
//	"journal": { "driver": "sqlite", "path": "./clockd_journal.db" }
type JournalConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}
