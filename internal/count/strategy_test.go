package count

import (
	"bytes"
	"errors"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding"
)

func countWith(t *testing.T, s Strategy, r io.Reader) Counts {
	t.Helper()
	var c Counts
	require.NoError(t, s.Count(r, &c, nil))
	return c
}

func TestBytesOnly(t *testing.T) {
	c := countWith(t, BytesOnly, strings.NewReader("12345678"))
	require.Equal(t, uint64(8), c.Bytes)
}

func TestLinesOnly(t *testing.T) {
	c := countWith(t, LinesOnly, strings.NewReader("\n\n\n\n\n\n\n\n"))
	require.Equal(t, uint64(8), c.Lines)
	require.Equal(t, uint64(8), c.Bytes)
}

func TestCharsOnly(t *testing.T) {
	c := countWith(t, CharsOnly, bytes.NewReader([]byte("fo\xC3\xB3")))
	require.Equal(t, uint64(3), c.Chars)
	require.Equal(t, uint64(4), c.Bytes)
}

func TestCharsOnlySplitSequence(t *testing.T) {
	in := []byte(strings.Repeat("żółw ", 40))
	c := countWith(t, CharsOnly, iotest.OneByteReader(bytes.NewReader(in)))
	require.Equal(t, uint64(len([]rune(string(in)))), c.Chars)
	require.Equal(t, uint64(len(in)), c.Bytes)
}

func TestLinesLongest(t *testing.T) {
	c := countWith(t, LinesLongest, strings.NewReader("foo\nbar\nmoooo\nhmm\n"))
	require.Equal(t, uint64(4), c.Lines)
	require.Equal(t, uint64(5), c.LongestLine)
}

func TestLinesLongestAcrossReads(t *testing.T) {
	c := countWith(t, LinesLongest, iotest.HalfReader(strings.NewReader("ab\n"+strings.Repeat("x", 3*ReadSize)+"\nc\n")))
	require.Equal(t, uint64(3), c.Lines)
	require.Equal(t, uint64(3*ReadSize), c.LongestLine)
}

func TestWordsLinesLongest(t *testing.T) {
	c := countWith(t, WordsLinesLongest, strings.NewReader("one two\nthree\nfour five six\n"))
	require.Equal(t, uint64(3), c.Lines)
	require.Equal(t, uint64(6), c.Words)
	require.Equal(t, uint64(13), c.LongestLine)
}

func TestWordsSpanReads(t *testing.T) {
	c := countWith(t, WordsLinesLongest, iotest.OneByteReader(strings.NewReader("alpha  beta\tgamma\r\n")))
	require.Equal(t, uint64(3), c.Words)
	require.Equal(t, uint64(1), c.Lines)
	require.Equal(t, uint64(18), c.LongestLine)
}

func TestCharsLinesLongest(t *testing.T) {
	c := countWith(t, CharsLinesLongest, bytes.NewReader([]byte("foo\nbar\nmoo\xC3\xB3o\nhmm\n")))
	require.Equal(t, uint64(4), c.Lines)
	require.Equal(t, c.Bytes-1, c.Chars)
	require.Equal(t, uint64(5), c.LongestLine)
}

func TestCharsWordsLinesLongest(t *testing.T) {
	c := countWith(t, CharsWordsLinesLongest, bytes.NewReader([]byte("\xC3\xB3ne two\nthree\nfour five six\n")))
	require.Equal(t, uint64(3), c.Lines)
	require.Equal(t, uint64(6), c.Words)
	require.Equal(t, c.Bytes-1, c.Chars)
	require.Equal(t, uint64(13), c.LongestLine)
}

func TestDecodeUnicodeWhitespace(t *testing.T) {
	c := countWith(t, CharsWordsLinesLongest, strings.NewReader("a b　c\n"))
	require.Equal(t, uint64(3), c.Words)
	require.Equal(t, uint64(6), c.Chars)
	require.Equal(t, uint64(5), c.LongestLine)
}

func TestDecodeLongLineSplitsRune(t *testing.T) {
	// the 3-byte rune straddles the first ReadSize boundary
	in := strings.Repeat("a", ReadSize-1) + "€" + strings.Repeat("b", 10) + "\n"
	c := countWith(t, CharsWordsLinesLongest, strings.NewReader(in))
	require.Equal(t, uint64(len(in)), c.Bytes)
	require.Equal(t, uint64(ReadSize+11), c.Chars)
	require.Equal(t, uint64(ReadSize+10), c.LongestLine)
	require.Equal(t, uint64(1), c.Words)
}

func TestDecodeRejectsInvalidUTF8(t *testing.T) {
	for name, in := range map[string]string{
		"stray byte":       "ok\nbad \xff here\n",
		"truncated at eof": "truncated \xe2\x82",
		"bad continuation": "x\xe2\x28\xa1\n",
		"surrogate":        "\xed\xa0\x80\n",
		"past first read":  strings.Repeat("a", ReadSize+5) + "\xc3(\n",
	} {
		for rname, r := range map[string]io.Reader{
			"whole":    strings.NewReader(in),
			"one byte": iotest.OneByteReader(strings.NewReader(in)),
		} {
			var c Counts
			err := CharsWordsLinesLongest.Count(r, &c, nil)
			require.ErrorIs(t, err, encoding.ErrInvalidUTF8, "%s/%s", name, rname)
		}
	}
}

func TestDecodeAcceptsRunesSplitAcrossReads(t *testing.T) {
	in := "héllo wörld\n€ 𝄞\n"
	c := countWith(t, CharsWordsLinesLongest, iotest.OneByteReader(strings.NewReader(in)))
	require.Equal(t, uint64(len(in)), c.Bytes)
	require.Equal(t, uint64(utf8.RuneCountInString(in)), c.Chars)
	require.Equal(t, uint64(4), c.Words)
	require.Equal(t, uint64(2), c.Lines)
	require.Equal(t, uint64(11), c.LongestLine)
}

func TestUnterminatedLineIsNotLongest(t *testing.T) {
	for _, s := range []Strategy{LinesLongest, WordsLinesLongest, CharsLinesLongest, CharsWordsLinesLongest} {
		c := countWith(t, s, strings.NewReader("ab\nlonger tail"))
		require.Equal(t, uint64(2), c.LongestLine, s.String())
		require.Equal(t, uint64(1), c.Lines, s.String())
	}
}

func TestReadErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	for s := Strategy(0); s < numStrategies; s++ {
		var c Counts
		r := io.MultiReader(strings.NewReader("abc\n"), iotest.ErrReader(boom))
		require.ErrorIs(t, s.Count(r, &c, nil), boom, s.String())
	}
}

type tickCounter struct{ n int }

func (r *tickCounter) Report(*Counts) { r.n++ }

func TestReporterPolledPerRead(t *testing.T) {
	for s := Strategy(0); s < numStrategies; s++ {
		rep := &tickCounter{}
		var c Counts
		require.NoError(t, s.Count(iotest.OneByteReader(strings.NewReader("a b\nc\n")), &c, rep))
		require.GreaterOrEqual(t, rep.n, 1, s.String())
	}
}

func randomText(rng *rand.Rand, n int) []byte {
	alphabet := []string{"a", "b", "Z", " ", " ", "\t", "\n", "\n", "é", "ж", "€", "😀", "\r"}
	var b bytes.Buffer
	for b.Len() < n {
		b.WriteString(alphabet[rng.Intn(len(alphabet))])
	}
	return b.Bytes()
}

func TestCrossStrategyConsistency(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		in := randomText(rng, rng.Intn(3*ReadSize))
		for _, req := range allRequests() {
			var ref *Counts
			for s := Strategy(0); s < numStrategies; s++ {
				if !s.Capability().Compatible(req) {
					continue
				}
				got := countWith(t, s, iotest.HalfReader(bytes.NewReader(in)))
				require.Equal(t, uint64(len(in)), got.Bytes)
				if ref == nil {
					ref = &got
					continue
				}
				require.Equal(t, ref.Fields(req), got.Fields(req), "%s for %+v", s, req)
			}
		}
	}
}

func TestCountFile(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, "a.txt")
	if err := os.WriteFile(p, []byte("one two\nthree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := BytesOnly.CountFile(p, nil)
	require.NoError(t, err)
	require.Equal(t, Counts{Label: p, Bytes: 14}, c)

	c, err = WordsLinesLongest.CountFile(p, nil)
	require.NoError(t, err)
	require.Equal(t, Counts{Label: p, Lines: 2, Words: 3, Bytes: 14, LongestLine: 7}, c)

	_, err = LinesOnly.CountFile(filepath.Join(tmp, "missing.txt"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
	_, err = BytesOnly.CountFile(filepath.Join(tmp, "missing.txt"), nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestCountFileBytesFallsBackToRead(t *testing.T) {
	_, err := BytesOnly.CountFile(t.TempDir(), nil)
	require.Error(t, err)
}
