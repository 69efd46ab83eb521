// Package muxml walks a parser.ParseResult and emits a MusicXML 4.0
// score-partwise document (spec.md §4.6). Generation is streaming: the
// document is written directly to an io.Writer rather than built as an
// in-memory tree, matching the original backend's buffer-and-stream
// approach (see DESIGN.md).
package muxml

import (
	"bufio"
	"io"

	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
	"github.com/algorithmiker/scoreman/tabelem"
)

// conventionalTuning gives the open-string letter for each string position,
// top (high e) to bottom (low E), matching fretboard's base-semitone table.
var conventionalTuning = [6]rune{'e', 'B', 'G', 'D', 'A', 'E'}

// Options configures the three pass-2 measure transforms and the tuning
// source used when resolving pitches.
type Options struct {
	TrimMeasure            bool
	RemoveRestBetweenNotes bool
	SimplifyTimeSignature  bool
	// DynamicTuning resolves pitches from the captured base-note letters
	// instead of the conventional tuning table (spec.md §9 open question).
	DynamicTuning bool
}

// Generator holds the monotonic slur/slide counters; they are scoped to one
// Generator instance rather than living at module scope (spec.md §9).
type Generator struct {
	slurCnt  int
	slideCnt int
}

// NewGenerator returns a Generator ready for one Generate call.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a complete score-partwise document for res to w. It
// returns any diagnostics raised along the way (currently only
// VibratoAtPartStart) and the first fatal error encountered.
func (g *Generator) Generate(res *parser.ParseResult, opts Options, w io.Writer) ([]scoreerr.Diagnostic, *scoreerr.Error) {
	if len(res.TickStream) == 0 {
		return nil, scoreerr.EmptyScoreErr()
	}

	stream := append([]tabelem.Element(nil), res.TickStream...)
	measures := append([]parser.Measure(nil), res.Measures...)

	props, summaries, diags, err := g.scanSpans(&stream, &measures, res.Sections)
	if err != nil {
		return diags, err
	}

	contents := optimizeMeasures(measures, summaries, opts)

	bw := bufio.NewWriter(w)
	if ferr := emit(bw, stream, measures, contents, props, res, opts); ferr != nil {
		return diags, scoreerr.FromIOError(ferr)
	}
	if ferr := bw.Flush(); ferr != nil {
		return diags, scoreerr.FromIOError(ferr)
	}
	return diags, nil
}

func partIndexForStream(sections []parser.SectionOffset, streamIdx int) int {
	lo, hi := 0, len(sections)-1
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if sections[mid].Stream <= streamIdx {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}
