//go:build !unix

package siginfo

// Hook is a no-op where no progress signal exists.
func Hook() (stop func()) {
	return func() {}
}
