package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"cw/internal/app"
	"cw/internal/config"
	"cw/internal/count"
	"cw/internal/filelist"
	"cw/internal/output"
	"cw/internal/siginfo"
)

type commonFlags struct {
	Lines       bool
	Words       bool
	Bytes       bool
	Chars       bool
	LongestLine bool
	Threads     int
	FilesFrom   string
	Files0From  string
	Exclude     []string
	Format      string
	Config      string
	LogLevel    string
	ShowVersion bool
}

func Execute() int {
	root := NewRootCmd(os.Stdin, os.Stdout, os.Stderr)
	root.SetArgs(os.Args[1:])
	if err := root.Execute(); err != nil {
		var ee *ExitError
		if errors.As(err, &ee) {
			if ee.Msg != "" {
				fmt.Fprintln(os.Stderr, ee.Msg)
			}
			return ee.Code
		}
		fmt.Fprintln(os.Stderr, err.Error())
		return ExitInternal
	}
	return ExitOK
}

func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	flags := &commonFlags{}
	root := &cobra.Command{
		Use:           "cw [flags] [file...]",
		Short:         "Count lines, words, bytes, characters and the longest line",
		Long:          rootLongHelp(),
		Example:       rootExampleHelp(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.ShowVersion {
				printVersion(stdout)
				return nil
			}
			return runCount(cmd, flags, args, stdin, stdout, stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &ExitError{Code: ExitArg, Msg: err.Error()}
	})
	bindFlags(root, flags)
	return root
}

func bindFlags(cmd *cobra.Command, flags *commonFlags) {
	f := cmd.Flags()
	f.BoolVarP(&flags.Lines, "lines", "l", false, "print the newline counts")
	f.BoolVarP(&flags.Words, "words", "w", false, "print the word counts")
	f.BoolVarP(&flags.Bytes, "bytes", "c", false, "print the byte counts")
	f.BoolVarP(&flags.Chars, "chars", "m", false, "print the UTF-8 character counts (overrides -c)")
	f.BoolVarP(&flags.LongestLine, "max-line-length", "L", false, "print the length of the longest line, in bytes or in characters with -m")
	f.IntVar(&flags.Threads, "threads", app.DefaultThreads(), "number of files counted concurrently")
	f.StringVar(&flags.FilesFrom, "files-from", "", "read input paths, one per line, from FILE (- for stdin)")
	f.StringVar(&flags.Files0From, "files0-from", "", "read NUL-terminated input paths from FILE (- for stdin)")
	f.StringArrayVar(&flags.Exclude, "exclude", nil, "skip inputs whose path or basename matches this glob (repeatable, ** supported)")
	f.StringVar(&flags.Format, "format", output.FormatText, "output format: text, ndjson or json")
	f.StringVar(&flags.Config, "config", "", "YAML configuration file")
	f.StringVar(&flags.LogLevel, "log-level", "warn", "log level: debug, info, warn or error")
	f.BoolVarP(&flags.ShowVersion, "version", "v", false, "print version information")
}

func runCount(cmd *cobra.Command, flags *commonFlags, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Resolve(flags.Config)
	if err != nil {
		return &ExitError{Code: ExitConfig, Msg: err.Error()}
	}
	opts, err := buildOptions(cmd, flags, cfg, args, stdin)
	if err != nil {
		var ae *app.ArgErr
		var ce *app.ConfigErr
		switch {
		case errors.As(err, &ae):
			return &ExitError{Code: ExitArg, Msg: err.Error()}
		case errors.As(err, &ce):
			return &ExitError{Code: ExitConfig, Msg: err.Error()}
		}
		return &ExitError{Code: ExitInput, Msg: err.Error()}
	}
	logger, err := newLogger(opts.logLevel, stderr)
	if err != nil {
		return &ExitError{Code: ExitArg, Msg: err.Error()}
	}
	opts.Logger = logger
	opts.Stdout = stdout
	opts.Stderr = stderr

	stop := siginfo.Hook()
	defer stop()

	res, err := app.Run(opts.Options)
	if err != nil {
		var ae *app.ArgErr
		switch {
		case errors.As(err, &ae):
			return &ExitError{Code: ExitArg, Msg: err.Error()}
		case opts.UseStdin && res.Failed > 0:
			return &ExitError{Code: ExitInput, Msg: "standard input: " + err.Error()}
		default:
			return &ExitError{Code: ExitInternal, Msg: fmt.Sprintf("write output: %v", err)}
		}
	}
	if code := res.ExitCode(); code != 0 {
		return &ExitError{Code: ExitInput}
	}
	return nil
}

type runOptions struct {
	app.Options
	logLevel string
}

// buildOptions merges flags over CW_* env and the config file.
func buildOptions(cmd *cobra.Command, flags *commonFlags, cfg config.Config, args []string, stdin io.Reader) (runOptions, error) {
	opts := runOptions{Options: app.Options{Stdin: stdin}}

	opts.Request = count.Request{
		Lines:       flags.Lines,
		Words:       flags.Words,
		Bytes:       flags.Bytes,
		Chars:       flags.Chars,
		LongestLine: flags.LongestLine,
	}
	if opts.Request.Empty() && cfg.Defaults != nil {
		opts.Request = count.Request{
			Lines:       cfg.Defaults.Lines,
			Words:       cfg.Defaults.Words,
			Bytes:       cfg.Defaults.Bytes,
			Chars:       cfg.Defaults.Chars,
			LongestLine: cfg.Defaults.MaxLineLength,
		}
	}

	opts.Threads = app.DefaultThreads()
	if cfg.Threads != nil {
		opts.Threads = *cfg.Threads
	}
	if cmd.Flags().Changed("threads") {
		opts.Threads = flags.Threads
	}
	if opts.Threads < 1 {
		return opts, settingErr(cmd, "threads", fmt.Sprintf("threads must be at least 1, got %d", opts.Threads))
	}

	opts.Format = output.FormatText
	if cfg.Format != "" {
		opts.Format = cfg.Format
	}
	if cmd.Flags().Changed("format") {
		opts.Format = flags.Format
	}
	if err := output.ValidateFormat(opts.Format); err != nil {
		return opts, settingErr(cmd, "format", err.Error())
	}

	opts.logLevel = cfg.LogLevel
	if cmd.Flags().Changed("log-level") || opts.logLevel == "" {
		opts.logLevel = flags.LogLevel
	}
	if _, err := parseLevel(opts.logLevel); err != nil {
		return opts, settingErr(cmd, "log-level", err.Error())
	}

	exclude := cfg.Exclude
	if cmd.Flags().Changed("exclude") {
		exclude = flags.Exclude
	}
	if err := filelist.ValidatePatterns(exclude); err != nil {
		return opts, settingErr(cmd, "exclude", err.Error())
	}

	filesFrom := strings.TrimSpace(flags.FilesFrom)
	files0From := strings.TrimSpace(flags.Files0From)
	if filesFrom == "-" && files0From == "-" {
		return opts, &app.ArgErr{Msg: "--files-from and --files0-from cannot both read standard input"}
	}
	paths := append([]string(nil), args...)
	for _, m := range []struct {
		path string
		sep  byte
	}{{filesFrom, filelist.NewlineSep}, {files0From, filelist.NulSep}} {
		if m.path == "" {
			continue
		}
		more, err := filelist.Load(m.path, m.sep, stdin)
		if err != nil {
			return opts, err
		}
		paths = append(paths, more...)
	}
	opts.Paths = filelist.Exclude(paths, exclude)
	opts.UseStdin = len(args) == 0 && filesFrom == "" && files0From == ""
	return opts, nil
}

// settingErr blames the flag when it was given on the command line and the
// config file or CW_* environment otherwise.
func settingErr(cmd *cobra.Command, flag, msg string) error {
	if cmd.Flags().Changed(flag) {
		return &app.ArgErr{Msg: "--" + flag + ": " + msg}
	}
	return &app.ConfigErr{Msg: "config: " + msg}
}
