// Package siginfo turns progress-request signals (SIGINFO, SIGUSR1) into a
// generation counter that each counting goroutine polls on its own.
package siginfo

import "sync/atomic"

var generation atomic.Uint64

// Trigger records one progress request, exactly as a delivered signal would.
func Trigger() {
	generation.Add(1)
}

// Listener remembers the last generation it observed. It is not safe for
// concurrent use; give every goroutine its own.
type Listener struct {
	seen uint64
}

func NewListener() *Listener {
	return &Listener{seen: generation.Load()}
}

// Pending reports whether a signal arrived since the previous call.
func (l *Listener) Pending() bool {
	cur := generation.Load()
	if cur == l.seen {
		return false
	}
	l.seen = cur
	return true
}
