package config

import (
	"sort"
	"strings"

	logx "clockd/pkg/logx"
)

// SummarizeConfigChange returns (1) a compact list of changed sections and
// (2) safe structured attrs for logging.
func SummarizeConfigChange(oldCfg, newCfg *Config) ([]string, []logx.Field) {
	if oldCfg == nil {
		oldCfg = &Config{}
	}
	if newCfg == nil {
		newCfg = &Config{}
	}

	changed := make([]string, 0, 3)
	attrs := make([]logx.Field, 0, 10)

	// Logging
	if oldCfg.Logging.Level != newCfg.Logging.Level ||
		!boolPtrEq(oldCfg.Logging.Console, newCfg.Logging.Console) ||
		oldCfg.Logging.File.Enabled != newCfg.Logging.File.Enabled ||
		strings.TrimSpace(oldCfg.Logging.File.Path) != strings.TrimSpace(newCfg.Logging.File.Path) {
		changed = append(changed, "logging")
		attrs = append(attrs,
			logx.String("logx.level", newCfg.Logging.Level),
			logx.Bool("logx.file_enabled", newCfg.Logging.File.Enabled),
		)
	}

	// Clock
	if strings.TrimSpace(oldCfg.Clock.Timezone) != strings.TrimSpace(newCfg.Clock.Timezone) ||
		strings.TrimSpace(oldCfg.Clock.Align) != strings.TrimSpace(newCfg.Clock.Align) ||
		!boolPtrEq(oldCfg.Clock.VisibilityAware, newCfg.Clock.VisibilityAware) ||
		strings.TrimSpace(oldCfg.Clock.DriftThreshold) != strings.TrimSpace(newCfg.Clock.DriftThreshold) {
		changed = append(changed, "clock")
		attrs = append(attrs,
			logx.String("clock.timezone", strings.TrimSpace(newCfg.Clock.Timezone)),
			logx.String("clock.align", strings.TrimSpace(newCfg.Clock.Align)),
			logx.String("clock.drift_threshold", strings.TrimSpace(newCfg.Clock.DriftThreshold)),
		)
	}

	// Journal (nil means disabled)
	var oDriver, nDriver, oBusy, nBusy string
	var oPathSet, nPathSet bool
	if oldCfg.Journal != nil {
		oDriver = strings.TrimSpace(oldCfg.Journal.Driver)
		oBusy = strings.TrimSpace(oldCfg.Journal.BusyTimeout)
		oPathSet = strings.TrimSpace(oldCfg.Journal.Path) != ""
	}
	if newCfg.Journal != nil {
		nDriver = strings.TrimSpace(newCfg.Journal.Driver)
		nBusy = strings.TrimSpace(newCfg.Journal.BusyTimeout)
		nPathSet = strings.TrimSpace(newCfg.Journal.Path) != ""
	}
	if oDriver != nDriver || oBusy != nBusy || oPathSet != nPathSet {
		changed = append(changed, "journal")
		attrs = append(attrs,
			logx.String("journal.driver", nDriver),
			logx.Bool("journal.path_set", nPathSet),
		)
	}

	sort.Strings(changed)
	return changed, attrs
}

func boolPtrEq(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
