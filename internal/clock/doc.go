// Package clock provides a process-wide wall-clock tick service.
//
// A Clock emits "second"/"minute" events snapped to wall-clock boundaries in
// its active timezone, plus an "hour" event riding on every accepted tick.
// It tolerates imprecise host timers by measuring drift on every firing and
// realigning (instead of emitting) when a firing lands too far from its
// expected boundary, e.g. after the host was suspended in the background.
//
// The host is abstracted behind env.Capability, so tests drive the service
// with a simulated clock and timers.
package clock
