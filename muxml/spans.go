package muxml

import (
	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
	"github.com/algorithmiker/scoreman/tabelem"
)

// VibratoMark is the wavy-line boundary attached to a note's properties.
type VibratoMark uint8

const (
	VibratoNone VibratoMark = iota
	VibratoStart
	VibratoStop
)

// SlurMark is one numbered slur boundary; a note can carry several (the
// middle note of a hammer-on followed by a pull-off ends the first slur and
// starts the second).
type SlurMark struct {
	Number int
	Start  bool
}

// SlideMark is one numbered slide boundary.
type SlideMark struct {
	Number int
	Start  bool
}

// NoteProperties is the transient per-tick decoration record pass 1 builds
// (spec.md §3 "NoteProperties").
type NoteProperties struct {
	Slurs   []SlurMark
	Slide   *SlideMark
	Vibrato VibratoMark
}

type colKind uint8

const (
	colRest colKind = iota
	colCopyTick
	colInvalid
)

// colSummary is one tick's column-summary entry from pass 1 (spec.md §3
// "Muxml2TabElement"). n is the rest run length for colRest, or the
// tick-stream index to copy for colCopyTick.
type colSummary struct {
	kind colKind
	n    int
}

// scanSpans is pass 1 (spec.md §4.6): walk the tick stream, track slur/
// slide/vibrato spans into a per-index NoteProperties map, materialise
// successor ticks for bends and vibrato where needed, and build the
// column-summary buffer. stream and measures are grown in place when a
// decorator needs a tick beyond the part's current end.
func (g *Generator) scanSpans(
	stream *[]tabelem.Element,
	measures *[]parser.Measure,
	sections []parser.SectionOffset,
) (map[int]*NoteProperties, []colSummary, []scoreerr.Diagnostic, *scoreerr.Error) {
	props := make(map[int]*NoteProperties)
	prop := func(i int) *NoteProperties {
		p, ok := props[i]
		if !ok {
			p = &NoteProperties{}
			props[i] = p
		}
		return p
	}

	var diags []scoreerr.Diagnostic
	var summaries []colSummary
	tickHasNote := false

	for i := 0; i < len(*stream); i++ {
		atom := (*stream)[i]

		switch atom.Kind {
		case tabelem.KindFret, tabelem.KindDeadNote:
			tickHasNote = true

		case tabelem.KindVibrato:
			partStart := sections[partIndexForStream(sections, i)].Stream
			if i-6 < partStart {
				line := sections[partIndexForStream(sections, i)].Line + i%6
				diags = append(diags, scoreerr.NewWarning(scoreerr.LineOnly(line), scoreerr.VibratoAtPartStart))
				break
			}
			prop(i - 6).Vibrato = VibratoStart
			ensureTick(stream, measures, i+6)
			prop(i + 6).Vibrato = VibratoStop

		case tabelem.KindBend, tabelem.KindHammerOn, tabelem.KindPull, tabelem.KindRelease:
			g.slurCnt++
			n := g.slurCnt
			if i-6 >= 0 {
				p := prop(i - 6)
				p.Slurs = append(p.Slurs, SlurMark{Number: n, Start: true})
			}
			target := i + 6
			if target >= len(*stream) || (*stream)[target].Kind == tabelem.KindRest {
				if i-6 < 0 || (*stream)[i-6].Kind != tabelem.KindFret {
					return nil, nil, diags, scoreerr.BendOnInvalidErr(lineOf(sections, i))
				}
				srcFret := (*stream)[i-6].Fret
				ensureTick(stream, measures, target)
				(*stream)[target] = tabelem.NewFret(srcFret + 1)
				prop(target).Slurs = append(prop(target).Slurs, SlurMark{Number: n, Start: false})
			} else {
				prop(target).Slurs = append(prop(target).Slurs, SlurMark{Number: n, Start: false})
			}

		case tabelem.KindSlide:
			g.slideCnt++
			n := g.slideCnt
			if i-6 >= 0 {
				prop(i - 6).Slide = &SlideMark{Number: n, Start: true}
			}
			target := i + 6
			ensureTick(stream, measures, target)
			prop(target).Slide = &SlideMark{Number: n, Start: false}
		}

		if i%6 == 5 {
			if tickHasNote {
				summaries = append(summaries, colSummary{kind: colCopyTick, n: i - 5})
			} else {
				summaries = append(summaries, colSummary{kind: colRest, n: 1})
			}
			tickHasNote = false
		}
	}

	return props, summaries, diags, nil
}

// ensureTick guarantees the six-element tick containing target is fully
// present, extending with Rests and growing the last measure's end if that
// tick falls past the stream's current length.
func ensureTick(stream *[]tabelem.Element, measures *[]parser.Measure, target int) {
	tickEnd := target - target%6 + 6
	for len(*stream) < tickEnd {
		*stream = append(*stream, tabelem.Rest)
	}
	if n := len(*measures); n > 0 {
		last := &(*measures)[n-1]
		if last.End < len(*stream)-1 {
			last.End = len(*stream) - 1
		}
	}
}

func lineOf(sections []parser.SectionOffset, i int) int {
	sec := sections[partIndexForStream(sections, i)]
	return sec.Line + i%6
}
