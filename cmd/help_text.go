package cmd

import "strings"

func rootLongHelp() string {
	return strings.TrimSpace(`
Count lines, words, bytes, characters and the longest line of each input.

Only the work needed for the requested counts is done: asking for bytes alone
reads file sizes from metadata, asking for lines alone never decodes UTF-8, and
only -m combined with -w or -L decodes every character.

With no files (and no --files-from/--files0-from) standard input is counted.
--exclude globs are matched against each path and against its basename, so
--exclude '*.log' skips log files at any depth.
With more than one file a "total" line follows. Files are counted by
--threads workers; output order always matches input order.

Fields, in this order and only when requested:
  lines  words  chars|bytes  max-line-length  path

Without any of -l -w -c -m -L the default is -l -w -c (or the "defaults"
section of the config file).

Configuration (lowest to highest precedence):
  1. --config FILE or CW_CONFIG (YAML: threads, format, exclude, log_level, defaults)
  2. CW_THREADS, CW_FORMAT, CW_EXCLUDE (comma separated), CW_LOG_LEVEL
  3. command-line flags

Send SIGUSR1 (or SIGINFO, Ctrl-T on BSD/macOS) to print the counts of the
files in progress on standard error.

Exit codes:
  0 success
  1 at least one input could not be counted
  2 invalid arguments
  3 invalid configuration
  4 internal or output error
`)
}

func rootExampleHelp() string {
	return strings.TrimSpace(`
  # lines, words and bytes of one file
  cw README.md

  # characters and longest line (in characters) of several files
  cw -mL docs/*.md

  # line counts of every Go file, eight workers
  find . -name '*.go' -print0 | cw -l --threads 8 --files0-from -

  # ndjson output, skipping vendored code
  cw --format ndjson --exclude 'vendor/**' --files-from files.txt
`)
}
