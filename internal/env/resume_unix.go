//go:build unix

package env

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// notifyResume maps "foreground resume" onto SIGCONT: that is what the
// process receives after being un-suspended (SIGSTOP/SIGTSTP, cgroup freeze).
func notifyResume(fn func()) (stop func()) {
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, syscall.SIGCONT)

	go func() {
		for {
			select {
			case <-done:
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
