package parser

import "sort"

// Locate reconstructs the (line, column) in the original source that
// produced tick-stream index k (spec.md §4.4). Column is a 0-based byte
// offset into the source line (unlike scoreerr.Location's 1-based column)
// and accounts for the string-name character, the opening bar, every closing
// bar already emitted earlier in the part, and the width of every prior
// tick's widest atom.
func Locate(res *ParseResult, k int) (line, column int, ok bool) {
	if len(res.Sections) == 0 || k < 0 || k >= len(res.TickStream) {
		return 0, 0, false
	}

	si := sort.Search(len(res.Sections), func(i int) bool {
		return res.Sections[i].Stream > k
	}) - 1
	if si < 0 {
		return 0, 0, false
	}
	sec := res.Sections[si]

	tickInPart := (k - sec.Stream) / 6
	stringIdx := (k - sec.Stream) % 6
	line = sec.Line + stringIdx

	barsBeforeTick := 0
	for _, m := range res.Measures {
		if m.Start < sec.Stream {
			continue
		}
		if m.Start-sec.Stream >= 6*(tickInPart+1) {
			break
		}
		if m.End < sec.Stream+6*tickInPart {
			barsBeforeTick++
		}
	}

	column = 2 + barsBeforeTick
	for t := 0; t < tickInPart; t++ {
		base := sec.Stream + 6*t
		maxW := 1
		for s := 0; s < 6; s++ {
			if w := res.TickStream[base+s].Width(); w > maxW {
				maxW = w
			}
		}
		column += maxW
	}

	return line, column, true
}
