package clock

import (
	"time"

	"clockd/pkg/logx"
)

// Scheduling discipline: at most one timer is ever pending. Every path that
// re-arms (restart, tick acceptance) first cancels the previous handle and
// bumps the generation counter, so a stale firing that raced its own
// cancellation is discarded by the gen check in handleTick.

// nextDelay computes the delay from now to the next aligned boundary.
// Boundaries are measured at millisecond resolution, matching the timer
// precision the service is specified against.
func nextDelay(mode AlignMode, now time.Time) time.Duration {
	switch mode {
	case AlignSecond:
		return time.Second - time.Duration(now.UnixMilli()%1_000)*time.Millisecond
	case AlignMinute:
		return time.Minute - time.Duration(now.UnixMilli()%60_000)*time.Millisecond
	default:
		return time.Second
	}
}

func clampDelay(d time.Duration) time.Duration {
	if d < minTimerDelay {
		return minTimerDelay
	}
	return d
}

// armLocked schedules the next firing. Caller holds c.mu.
func (c *Clock) armLocked() {
	if c.disposed {
		return
	}
	now := c.env.Now()
	d := clampDelay(nextDelay(c.align, now))
	gen := c.gen
	c.pending = c.env.AfterFunc(d, func() { c.handleTick(gen) })
	c.log.Trace("timer armed", logx.Duration("delay", d))
}

// cancelLocked stops any pending timer and invalidates in-flight firings.
func (c *Clock) cancelLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.gen++
}

// restartLocked cancels any pending timer and realigns from the current
// instant. The last accepted tick is forgotten so the first firing after a
// realignment is accepted unconditionally.
func (c *Clock) restartLocked() {
	if c.disposed {
		return
	}
	c.cancelLocked()
	c.lastAccepted = time.Time{}
	c.armLocked()
}

// restart is the external realignment entry point (visibility resume).
func (c *Clock) restart() {
	c.mu.Lock()
	c.restartLocked()
	c.mu.Unlock()
}

// handleTick runs when an armed timer elapses.
//
// On acceptance the next timer is armed before the events go out, so the
// single-pending-timer invariant holds even while listeners run; a listener
// that triggers a restart simply cancels that timer and arms its own.
func (c *Clock) handleTick(gen uint64) {
	c.mu.Lock()
	if c.disposed || gen != c.gen {
		// Cancelled or superseded while in flight.
		c.mu.Unlock()
		return
	}
	c.pending = nil

	actual := c.env.Now()
	if !c.lastAccepted.IsZero() {
		expected := c.lastAccepted.Add(c.align.unit())
		if !driftWithin(actual, expected, c.threshold) {
			if c.driftWarn.Allow() {
				c.log.Warn("tick drifted past threshold; realigning",
					logx.Time("expected", expected),
					logx.Time("actual", actual),
					logx.Duration("threshold", c.threshold),
				)
			}
			c.restartLocked()
			c.mu.Unlock()
			return
		}
	}

	c.lastAccepted = actual
	zoned := actual.In(c.tz.loc)
	kind := c.align.kind()
	c.armLocked()
	bus := c.bus
	c.mu.Unlock()

	bus.Emit(kind, zoned)
	// An hour tick rides on every accepted tick; it is never scheduled
	// independently.
	bus.Emit(KindHour, zoned)
}
