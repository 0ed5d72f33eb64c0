package app

import (
	"io"
	"sync"

	"cw/internal/count"
	"cw/internal/siginfo"
)

// lockedWriter serializes stderr between workers reporting progress and the
// coordinator reporting failures.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

type progress struct {
	listener *siginfo.Listener
	out      io.Writer
	req      count.Request
}

func (p *progress) Report(c *count.Counts) {
	if !p.listener.Pending() {
		return
	}
	_, _ = io.WriteString(p.out, c.Format(p.req))
}
