package clock

import (
	"fmt"
	"strings"
	"time"

	"clockd/internal/env"
	"clockd/internal/eventbus"
	"clockd/pkg/logx"
)

// AlignMode selects the wall-clock granularity ticks are snapped to.
type AlignMode string

const (
	// AlignNone ticks on a fixed 1s cadence without boundary snapping.
	AlignNone AlignMode = "none"
	// AlignSecond snaps ticks to the top of every second.
	AlignSecond AlignMode = "second"
	// AlignMinute snaps ticks to the top of every minute.
	AlignMinute AlignMode = "minute"
)

func ParseAlignMode(raw string) (AlignMode, error) {
	switch m := AlignMode(strings.ToLower(strings.TrimSpace(raw))); m {
	case AlignNone, AlignSecond, AlignMinute:
		return m, nil
	case "":
		return AlignMinute, nil
	default:
		return "", newConfigErr("align", raw, fmt.Errorf("must be one of none, second, minute"))
	}
}

// unit is the expected spacing between accepted ticks, used for drift checks.
func (m AlignMode) unit() time.Duration {
	if m == AlignMinute {
		return time.Minute
	}
	return time.Second
}

// kind is the event kind an accepted tick is published under.
func (m AlignMode) kind() eventbus.Kind {
	if m == AlignMinute {
		return KindMinute
	}
	return KindSecond
}

// TransitionMode declares the semantics of a timezone change.
type TransitionMode string

const (
	// PreserveWallClock realigns the schedule to the new zone's wall-clock
	// boundaries: the pending timer is cancelled and recomputed.
	PreserveWallClock TransitionMode = "preserve-wall-clock"
	// PreserveAbsolute keeps the in-flight cadence untouched; only the zone
	// used to render instants changes.
	PreserveAbsolute TransitionMode = "preserve-absolute"
)

// Event kinds published by the service. Tick kinds (second/minute/hour)
// carry a time.Time payload already localized to the active timezone;
// KindTimezoneChange carries a TimezoneChange.
const (
	KindSecond         = eventbus.Kind("second")
	KindMinute         = eventbus.Kind("minute")
	KindHour           = eventbus.Kind("hour")
	KindTimezoneChange = eventbus.Kind("timezoneChange")
)

// TimezoneChange is emitted exactly once per successful SetTimeZone call.
type TimezoneChange struct {
	From string
	To   string
	Mode TransitionMode
}

const (
	DefaultTimezone       = "Asia/Seoul"
	DefaultDriftThreshold = 250 * time.Millisecond

	// minTimerDelay floors every armed delay. The boundary formulas can
	// degenerate to zero when "now" lands exactly on a boundary; flooring
	// avoids a zero-delay re-arm loop.
	minTimerDelay = time.Millisecond
)

// Options configures a Clock. The zero value is usable: every field has a
// documented default.
type Options struct {
	// Timezone is the initial IANA identifier. Default "Asia/Seoul".
	Timezone string

	// Align selects the boundary granularity. Default AlignMinute.
	Align AlignMode

	// VisibilityAware attaches the foreground-resume monitor.
	// Nil means true.
	VisibilityAware *bool

	// DriftThreshold is the maximum |actual-expected| a firing may show and
	// still be accepted. Nil means DefaultDriftThreshold; explicit values
	// must be non-negative.
	DriftThreshold *time.Duration

	// Env is the host capability. Nil means env.NewHost().
	Env env.Capability

	Logger logx.Logger
}
