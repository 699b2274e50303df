// Package env abstracts everything the clock service needs from its host:
// the current instant, one-shot timer scheduling and cancellation, a
// foreground-resume signal, and timezone resolution.
//
// Production code uses Host (real timers, real tzdata, SIGCONT as the
// resume signal). Tests substitute their own Capability so no real timers
// are involved.
package env

import "time"

// Timer is a single-shot timer handle armed through a Capability.
//
// Stop reports whether the call prevented the timer from firing. A false
// return means the timer already fired or was already stopped; callers that
// need to ignore such late firings must track their own generation.
type Timer interface {
	Stop() bool
}

// Capability is the host boundary of the clock service.
type Capability interface {
	// Now returns the current absolute instant.
	Now() time.Time

	// AfterFunc arms a single-shot timer that runs fn after d elapses.
	// fn runs on an unspecified goroutine.
	AfterFunc(d time.Duration, fn func()) Timer

	// LoadLocation resolves an IANA timezone identifier.
	LoadLocation(name string) (*time.Location, error)

	// NotifyResume registers fn to run on every foreground-resume signal.
	// The returned stop function detaches the registration; calling it more
	// than once is safe. Hosts without a resume signal may return a no-op
	// stop and never invoke fn.
	NotifyResume(fn func()) (stop func())
}
