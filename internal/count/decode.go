package count

import (
	"bufio"
	"io"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

type runeWordState struct {
	lineLen uint64
	inWord  bool
}

func (st *runeWordState) consume(r rune, c *Counts) {
	c.Chars++
	if !unicode.IsSpace(r) {
		if !st.inWord {
			c.Words++
		}
		st.inWord = true
		st.lineLen++
		return
	}
	st.inWord = false
	if r != '\n' {
		st.lineLen++
		return
	}
	if st.lineLen > c.LongestLine {
		c.LongestLine = st.lineLen
	}
	st.lineLen = 0
	c.Lines++
}

// decodeCount reads at most ReadSize bytes or up to the next newline per
// iteration. Validation is left to encoding.UTF8Validator, which fails the
// input with encoding.ErrInvalidUTF8; everything it passes through is whole
// runes, so a short decode here is a rune cut by the ReadSize bound and is
// carried into the next read.
func decodeCount(r io.Reader, c *Counts, rep Reporter) error {
	br := bufio.NewReaderSize(transform.NewReader(r, encoding.UTF8Validator), ReadSize)
	st := runeWordState{}
	var tail [utf8.UTFMax]byte
	ntail := 0
	var scratch []byte

	for {
		chunk, err := br.ReadSlice('\n')
		c.Bytes += uint64(len(chunk))

		data := chunk
		if ntail > 0 {
			scratch = append(append(scratch[:0], tail[:ntail]...), chunk...)
			data = scratch
			ntail = 0
		}
		for len(data) > 0 {
			ch, size := utf8.DecodeRune(data)
			if ch == utf8.RuneError && size <= 1 {
				ntail = copy(tail[:], data)
				break
			}
			st.consume(ch, c)
			data = data[size:]
		}

		if len(chunk) > 0 && rep != nil {
			rep.Report(c)
		}

		switch err {
		case nil, bufio.ErrBufferFull:
		case io.EOF:
			if ntail > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		default:
			return err
		}
	}
}
