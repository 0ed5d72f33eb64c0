package count

import (
	"strconv"
	"strings"
)

const TotalLabel = "total"

type Counts struct {
	Label       string
	Lines       uint64
	Words       uint64
	Bytes       uint64
	Chars       uint64
	LongestLine uint64
}

func New(label string) Counts {
	return Counts{Label: label}
}

// Add folds o into c. LongestLine is a maximum, never a sum.
func (c *Counts) Add(o Counts) {
	c.Lines += o.Lines
	c.Words += o.Words
	c.Bytes += o.Bytes
	c.Chars += o.Chars
	if o.LongestLine > c.LongestLine {
		c.LongestLine = o.LongestLine
	}
}

// Fields returns the requested values in output order:
// lines, words, chars-or-bytes, longest line.
func (c Counts) Fields(req Request) []uint64 {
	out := make([]uint64, 0, 4)
	if req.Lines {
		out = append(out, c.Lines)
	}
	if req.Words {
		out = append(out, c.Words)
	}
	if req.Chars {
		out = append(out, c.Chars)
	} else if req.Bytes {
		out = append(out, c.Bytes)
	}
	if req.LongestLine {
		out = append(out, c.LongestLine)
	}
	return out
}

// Format renders one output line, newline included.
func (c Counts) Format(req Request) string {
	var b strings.Builder
	for _, v := range c.Fields(req) {
		s := strconv.FormatUint(v, 10)
		b.WriteByte(' ')
		for i := len(s); i < 7; i++ {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	if c.Label != "" {
		b.WriteByte(' ')
		b.WriteString(c.Label)
	}
	b.WriteByte('\n')
	return b.String()
}
