package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestExitErrorString(t *testing.T) {
	if (&ExitError{Code: 2, Msg: "x"}).Error() != "x" {
		t.Fatalf("unexpected exit error msg")
	}
	if (&ExitError{Code: 2}).Error() == "" {
		t.Fatalf("empty code message")
	}
}

func TestNewLogger(t *testing.T) {
	buf := &bytes.Buffer{}
	l, err := newLogger("debug", buf)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	l.Debug("hello")
	if buf.Len() == 0 {
		t.Fatalf("debug record should be written")
	}
	if _, err := newLogger("", buf); err != nil {
		t.Fatalf("empty level should default: %v", err)
	}
	if _, err := newLogger("chatty", buf); err == nil {
		t.Fatalf("expected invalid level error")
	}
}

func TestExecuteExitCodes(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	tmp := t.TempDir()
	file := filepath.Join(tmp, "a.txt")
	if err := os.WriteFile(file, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	os.Args = []string{"cw", "--threads", "0", file}
	if code := Execute(); code != ExitArg {
		t.Fatalf("expected ExitArg, got %d", code)
	}

	os.Args = []string{"cw", "-c", file}
	if code := Execute(); code != ExitOK {
		t.Fatalf("expected ExitOK, got %d", code)
	}

	os.Args = []string{"cw", filepath.Join(tmp, "missing.txt")}
	if code := Execute(); code != ExitInput {
		t.Fatalf("expected ExitInput, got %d", code)
	}
}
