//go:build unix && !(darwin || dragonfly || freebsd || netbsd || openbsd)

package siginfo

import "os"

var infoSignals []os.Signal
