package count

import (
	"bytes"
	"encoding/binary"
	"math/bits"
)

const hiBits = 0x8080808080808080

func countNewlines(buf []byte, c *Counts) {
	c.Lines += uint64(bytes.Count(buf, []byte{'\n'}))
}

func countChars(buf []byte, c *Counts) {
	c.Chars += leadingBytes(buf)
}

// leadingBytes counts bytes that do not match 0b10xxxxxx. Continuation
// bytes are never counted, so a sequence split across two reads still
// contributes exactly one.
func leadingBytes(buf []byte) uint64 {
	var cont int
	i := 0
	for ; i+8 <= len(buf); i += 8 {
		w := binary.LittleEndian.Uint64(buf[i:])
		cont += bits.OnesCount64(w & (^w << 1) & hiBits)
	}
	for ; i < len(buf); i++ {
		if buf[i]&0xc0 == 0x80 {
			cont++
		}
	}
	return uint64(len(buf) - cont)
}

type lineState struct {
	lineLen uint64
}

func (st *lineState) consume(buf []byte, c *Counts) {
	for len(buf) > 0 {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			st.lineLen += uint64(len(buf))
			return
		}
		st.lineLen += uint64(i)
		if st.lineLen > c.LongestLine {
			c.LongestLine = st.lineLen
		}
		st.lineLen = 0
		c.Lines++
		buf = buf[i+1:]
	}
}

// charLineState measures lines in codepoints by checkpointing the running
// char count at every newline.
type charLineState struct {
	last uint64
}

func (st *charLineState) consume(buf []byte, c *Counts) {
	for _, b := range buf {
		if b&0xc0 == 0x80 {
			continue
		}
		c.Chars++
		if b != '\n' {
			continue
		}
		lineLen := c.Chars - st.last - 1
		st.last = c.Chars
		if lineLen > c.LongestLine {
			c.LongestLine = lineLen
		}
		c.Lines++
	}
}

type asciiWordState struct {
	lineLen uint64
	inWord  bool
}

func (st *asciiWordState) consume(buf []byte, c *Counts) {
	for _, b := range buf {
		if !isASCIISpace(b) {
			if !st.inWord {
				c.Words++
			}
			st.inWord = true
			st.lineLen++
			continue
		}
		st.inWord = false
		if b != '\n' {
			st.lineLen++
			continue
		}
		if st.lineLen > c.LongestLine {
			c.LongestLine = st.lineLen
		}
		st.lineLen = 0
		c.Lines++
	}
}

// ASCII whitespace, vertical tab excluded.
func isASCIISpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}
