//go:build unix

package siginfo

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Hook starts forwarding progress signals into the generation counter.
// The returned func stops delivery.
func Hook() (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, append([]os.Signal{unix.SIGUSR1}, infoSignals...)...)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-ch:
				Trigger()
			case <-done:
				return
			}
		}
	}()
	return func() {
		signal.Stop(ch)
		close(done)
	}
}
