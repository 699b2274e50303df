package clock

import "time"

// driftWithin reports whether an observed firing instant is close enough to
// its expected boundary to accept. Host timers routinely fire late
// (throttling, scheduler congestion); tolerating small lateness avoids
// realignment churn, while a large deviation (say, after a suspended
// background period) must trigger a realignment rather than a stale emit.
func driftWithin(actual, expected time.Time, threshold time.Duration) bool {
	d := actual.Sub(expected)
	if d < 0 {
		d = -d
	}
	return d <= threshold
}
