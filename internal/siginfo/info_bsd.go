//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package siginfo

import (
	"os"

	"golang.org/x/sys/unix"
)

var infoSignals = []os.Signal{unix.SIGINFO}
