package count

// Request is the set of metrics asked for on the command line.
// Chars and Bytes are exclusive once normalized; Chars also switches
// Words and LongestLine to codepoint semantics.
type Request struct {
	Lines       bool
	Words       bool
	Bytes       bool
	Chars       bool
	LongestLine bool
}

func (r Request) Empty() bool {
	return !(r.Lines || r.Words || r.Bytes || r.Chars || r.LongestLine)
}

// Normalize applies the default set (lines, words, bytes) when nothing was
// requested and lets chars win over bytes.
func (r Request) Normalize() Request {
	if r.Empty() {
		r.Lines, r.Words, r.Bytes = true, true, true
	}
	if r.Chars {
		r.Bytes = false
	}
	return r
}

type Capability struct {
	Rank        uint32
	Lines       bool
	Words       bool
	Bytes       bool
	Chars       bool
	LongestLine bool
}

func (c Capability) Compatible(r Request) bool {
	return (!r.Lines || c.Lines) &&
		(!r.Bytes || c.Bytes) &&
		(!r.Chars || c.Chars) &&
		(!r.Words || (c.Words && c.Chars == r.Chars)) &&
		(!r.LongestLine || (c.LongestLine && c.Chars == r.Chars))
}

var capabilities = [numStrategies]Capability{
	BytesOnly:              {Rank: 0, Bytes: true},
	LinesOnly:              {Rank: 1, Bytes: true, Lines: true},
	CharsOnly:              {Rank: 1, Bytes: true, Chars: true},
	LinesLongest:           {Rank: 30, Bytes: true, Lines: true, LongestLine: true},
	CharsLinesLongest:      {Rank: 120, Bytes: true, Chars: true, Lines: true, LongestLine: true},
	WordsLinesLongest:      {Rank: 150, Bytes: true, Words: true, Lines: true, LongestLine: true},
	CharsWordsLinesLongest: {Rank: 400, Bytes: true, Chars: true, Words: true, Lines: true, LongestLine: true},
}

// Select returns the cheapest strategy able to produce exactly req.
// CharsWordsLinesLongest accepts every request, so failing here means the
// capability table is broken.
func Select(req Request) Strategy {
	best := Strategy(-1)
	for s := Strategy(0); s < numStrategies; s++ {
		c := capabilities[s]
		if !c.Compatible(req) {
			continue
		}
		if best < 0 || c.Rank < capabilities[best].Rank {
			best = s
		}
	}
	if best < 0 {
		panic("count: no counting strategy can serve the request")
	}
	return best
}
