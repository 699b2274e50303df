package env

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Host is the production Capability: clockwork's real clock for instants and
// timers, the system tzdata for locations, and (on unix) SIGCONT as the
// foreground-resume signal.
type Host struct {
	clock clockwork.Clock
}

func NewHost() *Host {
	return &Host{clock: clockwork.NewRealClock()}
}

func (h *Host) Now() time.Time { return h.clock.Now() }

func (h *Host) AfterFunc(d time.Duration, fn func()) Timer {
	return h.clock.AfterFunc(d, fn)
}

func (h *Host) LoadLocation(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}

func (h *Host) NotifyResume(fn func()) (stop func()) {
	return notifyResume(fn)
}
