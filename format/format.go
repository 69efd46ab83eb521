// Package format re-renders a parser.ParseResult as tab source: the
// pretty-printer/round-trip collaborator spec.md §1 names as an external
// contract of the core. Grounded on
// original_source/src/backend/format/mod.rs, which emits one six-line block
// per measure prefixed with a "SYS:" marker comment, and drops any comment
// that is itself a leftover SYS marker from an earlier format run so
// formatting twice is idempotent.
package format

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
)

// Format writes res back out as tab source to w.
func Format(res *parser.ParseResult, w io.Writer) *scoreerr.Error {
	bw := bufio.NewWriter(w)
	measureNo := 0
	ci := 0

	flushComments := func(beforeLine int) error {
		for ci < len(res.Comments) && res.Comments[ci].Line < beforeLine {
			c := res.Comments[ci]
			ci++
			if strings.HasPrefix(strings.TrimSpace(c.Text), "SYS:") {
				continue
			}
			if _, err := fmt.Fprintf(bw, "//%s\n", c.Text); err != nil {
				return err
			}
		}
		return nil
	}

	for si, sec := range res.Sections {
		if err := flushComments(sec.Line); err != nil {
			return scoreerr.FromIOError(err)
		}

		partEnd := len(res.TickStream)
		if si+1 < len(res.Sections) {
			partEnd = res.Sections[si+1].Stream
		}

		for _, m := range res.Measures {
			if m.Start < sec.Stream || m.Start >= partEnd {
				continue
			}
			measureNo++
			if err := writeMeasure(bw, res, si, m, measureNo); err != nil {
				return scoreerr.FromIOError(err)
			}
		}
	}

	if err := flushComments(math.MaxInt); err != nil {
		return scoreerr.FromIOError(err)
	}

	if err := bw.Flush(); err != nil {
		return scoreerr.FromIOError(err)
	}
	return nil
}

func writeMeasure(bw *bufio.Writer, res *parser.ParseResult, sectionIdx int, m parser.Measure, measureNo int) error {
	if _, err := fmt.Fprintf(bw, "// SYS: Measure %d\n", measureNo); err != nil {
		return err
	}

	// Every string's column must line up tick by tick, so each tick's
	// rendered width is the widest atom across all six strings at that
	// tick (mirroring parser.Locate's width accounting), not just the
	// atom's own width.
	var tickWidth []int
	if m.Start <= m.End {
		for t := m.Start / 6; t <= m.End/6; t++ {
			maxW := 1
			for s := 0; s < 6; s++ {
				if w := res.TickStream[t*6+s].Width(); w > maxW {
					maxW = w
				}
			}
			tickWidth = append(tickWidth, maxW)
		}
	}

	for s := 0; s < 6; s++ {
		base := '-'
		if li := sectionIdx*6 + s; li < len(res.BaseNotes) {
			base = res.BaseNotes[li]
		}
		if _, err := fmt.Fprintf(bw, "%c|", base); err != nil {
			return err
		}
		if m.Start <= m.End {
			for t := m.Start / 6; t <= m.End/6; t++ {
				atom := res.TickStream[t*6+s]
				rendered := atom.Render()
				if _, err := bw.WriteString(rendered); err != nil {
					return err
				}
				if pad := tickWidth[t-m.Start/6] - len(rendered); pad > 0 {
					if _, err := bw.WriteString(strings.Repeat("-", pad)); err != nil {
						return err
					}
				}
			}
		}
		if _, err := bw.WriteString("|\n"); err != nil {
			return err
		}
	}
	_, err := bw.WriteString("\n")
	return err
}
