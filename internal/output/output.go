package output

import (
	"encoding/json"
	"fmt"
	"io"

	"cw/internal/count"
)

const (
	FormatText   = "text"
	FormatNDJSON = "ndjson"
	FormatJSON   = "json"
)

func ValidateFormat(v string) error {
	switch v {
	case FormatText, FormatNDJSON, FormatJSON:
		return nil
	}
	return fmt.Errorf("unsupported output format: %s (want text, ndjson or json)", v)
}

// Writer emits one record per input plus an optional total. Text and ndjson
// records are written immediately; json is buffered until Flush.
type Writer struct {
	w      io.Writer
	format string
	req    count.Request
	events []map[string]any
}

func NewWriter(w io.Writer, format string, req count.Request) (*Writer, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	return &Writer{w: w, format: format, req: req}, nil
}

func (w *Writer) Counts(c count.Counts) error {
	return w.write("counts", c)
}

func (w *Writer) Total(c count.Counts) error {
	return w.write("total", c)
}

func (w *Writer) write(typ string, c count.Counts) error {
	switch w.format {
	case FormatText:
		_, err := io.WriteString(w.w, c.Format(w.req))
		return err
	case FormatNDJSON:
		enc := json.NewEncoder(w.w)
		enc.SetEscapeHTML(false)
		return enc.Encode(event(typ, c, w.req))
	default:
		w.events = append(w.events, event(typ, c, w.req))
		return nil
	}
}

func (w *Writer) Flush() error {
	if w.format != FormatJSON {
		return nil
	}
	events := w.events
	if events == nil {
		events = []map[string]any{}
	}
	b, err := json.MarshalIndent(map[string]any{"events": events}, "", "  ")
	if err != nil {
		return err
	}
	w.events = nil
	_, err = fmt.Fprintln(w.w, string(b))
	return err
}

func event(typ string, c count.Counts, req count.Request) map[string]any {
	e := map[string]any{"type": typ}
	if c.Label != "" {
		e["path"] = c.Label
	}
	if req.Lines {
		e["lines"] = c.Lines
	}
	if req.Words {
		e["words"] = c.Words
	}
	if req.Chars {
		e["chars"] = c.Chars
	} else if req.Bytes {
		e["bytes"] = c.Bytes
	}
	if req.LongestLine {
		e["max_line_length"] = c.LongestLine
	}
	return e
}
