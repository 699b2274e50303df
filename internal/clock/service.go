package clock

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"clockd/internal/env"
	"clockd/internal/eventbus"
	"clockd/pkg/logx"
)

// Clock is the tick service. Construct with New, release with Dispose.
//
// All state transitions (timezone changes, resume realignments, tick
// handling, disposal) are serialized by one mutex; events are emitted after
// the mutex is released so listeners may re-enter the public surface.
type Clock struct {
	mu sync.Mutex

	env env.Capability
	log logx.Logger
	bus *eventbus.Bus
	tz  *timezoneManager
	vis *visibilityMonitor

	align     AlignMode
	threshold time.Duration

	// Scheduler state. lastAccepted is zero until a tick has been accepted
	// since the last (re)alignment. gen invalidates in-flight timer firings.
	lastAccepted time.Time
	pending      env.Timer
	gen          uint64

	driftWarn *rate.Limiter

	disposed bool
}

// New builds the service and arms the first aligned timer.
func New(opts Options) (*Clock, error) {
	e := opts.Env
	if e == nil {
		e = env.NewHost()
	}
	log := opts.Logger
	if log.IsZero() {
		log = logx.Nop()
	}

	align := opts.Align
	if align == "" {
		align = AlignMinute
	}
	switch align {
	case AlignNone, AlignSecond, AlignMinute:
	default:
		return nil, newConfigErr("align", string(align), nil)
	}

	threshold := DefaultDriftThreshold
	if opts.DriftThreshold != nil {
		if *opts.DriftThreshold < 0 {
			return nil, newConfigErr("drift_threshold", opts.DriftThreshold.String(), nil)
		}
		threshold = *opts.DriftThreshold
	}

	tzid := opts.Timezone
	if tzid == "" {
		tzid = DefaultTimezone
	}
	tz, err := newTimezoneManager(e, tzid)
	if err != nil {
		return nil, err
	}

	c := &Clock{
		env:       e,
		log:       log,
		bus:       eventbus.New(log),
		tz:        tz,
		align:     align,
		threshold: threshold,
		driftWarn: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}

	c.mu.Lock()
	c.armLocked()
	c.mu.Unlock()

	if opts.VisibilityAware == nil || *opts.VisibilityAware {
		c.vis = attachVisibility(e, log, c.restart)
	}

	log.Debug("clock started",
		logx.String("tz", tzid),
		logx.String("align", string(align)),
		logx.Duration("drift_threshold", threshold),
	)
	return c, nil
}

// On subscribes fn to kind. Duplicate registrations (same listener identity,
// same kind) collapse into one.
func (c *Clock) On(kind eventbus.Kind, fn eventbus.Listener) {
	c.mu.Lock()
	disposed := c.disposed
	c.mu.Unlock()
	if disposed {
		return
	}
	c.bus.On(kind, fn)
}

// Off unsubscribes fn from kind; unknown listeners are a no-op.
func (c *Clock) Off(kind eventbus.Kind, fn eventbus.Listener) {
	c.bus.Off(kind, fn)
}

// Now returns the raw host instant.
func (c *Clock) Now() time.Time { return c.env.Now() }

// ZonedNow returns the current instant localized to the active timezone.
func (c *Clock) ZonedNow() time.Time {
	c.mu.Lock()
	loc := c.tz.loc
	c.mu.Unlock()
	return c.env.Now().In(loc)
}

// Format renders ZonedNow with a display pattern such as "HH:mm",
// "HH:mm:ss" or "YYYY-MM-DDTHH:mm:ss".
func (c *Clock) Format(pattern string) (string, error) {
	layout, err := layoutFor(pattern)
	if err != nil {
		return "", err
	}
	return c.ZonedNow().Format(layout), nil
}

// GetTimeZone returns the active timezone identifier.
func (c *Clock) GetTimeZone() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tz.id
}

// SetTimeZone atomically switches the active timezone and emits exactly one
// timezoneChange event. An empty mode means PreserveWallClock, which realigns
// the tick schedule to the new zone; PreserveAbsolute keeps the in-flight
// cadence and only changes how instants are rendered.
func (c *Clock) SetTimeZone(id string, mode TransitionMode) error {
	if mode == "" {
		mode = PreserveWallClock
	}
	switch mode {
	case PreserveWallClock, PreserveAbsolute:
	default:
		return newConfigErr("mode", string(mode), nil)
	}

	loc, err := c.env.LoadLocation(id)
	if err != nil {
		return newConfigErr("timezone", id, err)
	}

	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	prev := c.tz.swap(id, loc)
	if mode == PreserveWallClock {
		c.restartLocked()
	}
	bus := c.bus
	c.mu.Unlock()

	c.log.Info("timezone changed",
		logx.String("from", prev),
		logx.String("to", id),
		logx.String("mode", string(mode)),
	)
	bus.Emit(KindTimezoneChange, TimezoneChange{From: prev, To: id, Mode: mode})
	return nil
}

// Dispose cancels the pending timer, detaches the resume signal, and clears
// every listener set. It is idempotent; no tick fires after it returns.
func (c *Clock) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	c.cancelLocked()
	vis := c.vis
	c.vis = nil
	c.mu.Unlock()

	vis.detach()
	c.bus.Clear()
	c.log.Debug("clock disposed")
}
