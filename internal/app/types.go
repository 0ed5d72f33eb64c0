package app

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"

	"cw/internal/count"
)

type Options struct {
	Request  count.Request
	Paths    []string
	UseStdin bool
	Stdin    io.Reader
	Threads  int
	Format   string
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
}

type Result struct {
	Strategy  count.Strategy
	Total     count.Counts
	Inputs    int
	Processed int
	Failed    int
}

func (r Result) ExitCode() int {
	if r.Failed > 0 {
		return 1
	}
	return 0
}

type ConfigErr struct{ Msg string }

func (e *ConfigErr) Error() string { return e.Msg }

type ArgErr struct{ Msg string }

func (e *ArgErr) Error() string { return e.Msg }

// FileError tags a per-file failure with the path it came from.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	msg := e.Err.Error()
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		msg = pe.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Path, msg)
}

func (e *FileError) Unwrap() error { return e.Err }
