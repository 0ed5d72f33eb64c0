package count

import (
	"io"
	"os"
)

// ReadSize bounds every read so memory use does not depend on input size.
const ReadSize = 32 * 1024

type Strategy int

const (
	BytesOnly Strategy = iota
	LinesOnly
	CharsOnly
	LinesLongest
	CharsLinesLongest
	WordsLinesLongest
	CharsWordsLinesLongest
	numStrategies
)

func (s Strategy) String() string {
	switch s {
	case BytesOnly:
		return "bytes-only"
	case LinesOnly:
		return "lines-only"
	case CharsOnly:
		return "chars-only"
	case LinesLongest:
		return "lines-longest"
	case CharsLinesLongest:
		return "chars-lines-longest"
	case WordsLinesLongest:
		return "words-lines-longest"
	case CharsWordsLinesLongest:
		return "chars-words-lines-longest"
	default:
		return "unknown"
	}
}

func (s Strategy) Capability() Capability {
	return capabilities[s]
}

// Reporter is polled once per read with the in-flight counts.
type Reporter interface {
	Report(c *Counts)
}

// Count consumes r and accumulates into c. Read errors are returned as-is.
func (s Strategy) Count(r io.Reader, c *Counts, rep Reporter) error {
	switch s {
	case BytesOnly:
		return drive(r, c, rep, nil)
	case LinesOnly:
		return drive(r, c, rep, countNewlines)
	case CharsOnly:
		return drive(r, c, rep, countChars)
	case LinesLongest:
		st := &lineState{}
		return drive(r, c, rep, st.consume)
	case CharsLinesLongest:
		st := &charLineState{last: c.Chars}
		return drive(r, c, rep, st.consume)
	case WordsLinesLongest:
		st := &asciiWordState{}
		return drive(r, c, rep, st.consume)
	case CharsWordsLinesLongest:
		return decodeCount(r, c, rep)
	default:
		panic("count: unknown strategy " + s.String())
	}
}

// CountFile counts the file at path. The returned Counts carries path as its label.
func (s Strategy) CountFile(path string, rep Reporter) (Counts, error) {
	c := New(path)
	if s == BytesOnly {
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			c.Bytes = uint64(info.Size())
			return c, nil
		}
	}
	f, err := os.Open(path)
	if err != nil {
		return c, err
	}
	defer f.Close()
	if err := s.Count(f, &c, rep); err != nil {
		return c, err
	}
	return c, nil
}

func drive(r io.Reader, c *Counts, rep Reporter, consume func([]byte, *Counts)) error {
	buf := make([]byte, ReadSize)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if consume != nil {
				consume(buf[:n], c)
			}
			c.Bytes += uint64(n)
			if rep != nil {
				rep.Report(c)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
