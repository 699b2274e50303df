package clock

import (
	"clockd/internal/env"
	"clockd/pkg/logx"
)

// visibilityMonitor forces a schedule realignment on every foreground
// resume. Host timers are commonly suspended or heavily throttled while the
// process is backgrounded, so whatever timer is pending on resume is stale
// and must be recomputed rather than trusted.
type visibilityMonitor struct {
	stop func()
}

func attachVisibility(e env.Capability, log logx.Logger, onResume func()) *visibilityMonitor {
	v := &visibilityMonitor{}
	v.stop = e.NotifyResume(func() {
		log.Debug("foreground resume; realigning schedule")
		onResume()
	})
	return v
}

func (v *visibilityMonitor) detach() {
	if v == nil || v.stop == nil {
		return
	}
	v.stop()
	v.stop = nil
}
