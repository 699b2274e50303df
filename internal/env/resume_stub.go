//go:build !unix

package env

// Hosts without a suspend/resume signal degrade to best-effort ticking:
// the registration is accepted but never fires.
func notifyResume(fn func()) (stop func()) {
	_ = fn
	return func() {}
}
