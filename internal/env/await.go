package env

import (
	"context"
	"errors"
	"time"
)

// ErrWaitTimeout is returned by First when no condition fires in time.
var ErrWaitTimeout = errors.New("env: wait timed out")

// Delay waits for d to elapse on the given capability, honoring ctx
// cancellation. It is a generic awaitable for callers outside the tick
// schedule (startup grace periods, shutdown settling).
func Delay(ctx context.Context, c Capability, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	done := make(chan struct{})
	t := c.AfterFunc(d, func() { close(done) })
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		t.Stop()
		return ctx.Err()
	}
}

// First waits until one of conds is signalled (closed or sent to) and returns
// its index. A non-positive timeout means wait forever. It returns
// ErrWaitTimeout when the timeout elapses first, or ctx.Err() on cancellation.
func First(ctx context.Context, c Capability, timeout time.Duration, conds ...<-chan struct{}) (int, error) {
	if len(conds) == 0 {
		return -1, errors.New("env: no conditions")
	}

	won := make(chan int, 1)
	quit := make(chan struct{})
	defer close(quit)

	for i, cond := range conds {
		go func(i int, cond <-chan struct{}) {
			select {
			case <-cond:
				select {
				case won <- i:
				default:
				}
			case <-quit:
			}
		}(i, cond)
	}

	var expired chan struct{}
	var t Timer
	if timeout > 0 {
		expired = make(chan struct{})
		t = c.AfterFunc(timeout, func() { close(expired) })
		defer t.Stop()
	}

	select {
	case i := <-won:
		return i, nil
	case <-expired:
		return -1, ErrWaitTimeout
	case <-ctx.Done():
		return -1, ctx.Err()
	}
}
