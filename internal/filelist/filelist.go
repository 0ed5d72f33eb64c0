package filelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	NewlineSep byte = '\n'
	NulSep     byte = 0
)

// Read splits a manifest on sep. Empty entries are dropped; with NewlineSep a
// trailing '\r' is stripped as well.
func Read(r io.Reader, sep byte) ([]string, error) {
	br := bufio.NewReader(r)
	var out []string
	for {
		entry, err := br.ReadString(sep)
		entry = strings.TrimSuffix(entry, string(sep))
		if sep == NewlineSep {
			entry = strings.TrimSuffix(entry, "\r")
		}
		if entry != "" {
			out = append(out, entry)
		}
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
	}
}

// Load reads the manifest at path; "-" reads it from stdin.
func Load(path string, sep byte, stdin io.Reader) ([]string, error) {
	if path == "-" {
		paths, err := Read(stdin, sep)
		if err != nil {
			return nil, fmt.Errorf("read file list from stdin: %w", err)
		}
		return paths, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file list: %w", err)
	}
	defer f.Close()
	paths, err := Read(f, sep)
	if err != nil {
		return nil, fmt.Errorf("read file list %s: %w", path, err)
	}
	return paths, nil
}

func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(filepath.ToSlash(p)) {
			return fmt.Errorf("invalid exclude pattern: %s", p)
		}
	}
	return nil
}

// Exclude drops every path whose slash form or basename matches one of
// patterns, keeping input order.
func Exclude(paths, patterns []string) []string {
	if len(patterns) == 0 {
		return paths
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !isExcluded(p, patterns) {
			out = append(out, p)
		}
	}
	return out
}

func isExcluded(path string, patterns []string) bool {
	slashed := filepath.ToSlash(filepath.Clean(path))
	for _, p := range patterns {
		ok, err := doublestar.Match(filepath.ToSlash(p), slashed)
		if err == nil && ok {
			return true
		}
		ok, err = doublestar.Match(filepath.ToSlash(p), filepath.Base(slashed))
		if err == nil && ok {
			return true
		}
	}
	return false
}
