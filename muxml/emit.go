package muxml

import (
	"bufio"
	"fmt"

	"github.com/algorithmiker/scoreman/fretboard"
	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/tabelem"
)

const prelude = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE score-partwise PUBLIC "-//Recordare//DTD MusicXML 4.0 Partwise//EN" "http://www.musicxml.org/dtds/partwise.dtd">
<score-partwise version="4.0">
  <identification>
    <encoding>
      <software>scoreman</software>
    </encoding>
  </identification>
  <part-list>
    <score-part id="P1">
      <part-name>Guitar1</part-name>
    </score-part>
  </part-list>
  <part id="P1">
`

const epilogue = `  </part>
</score-partwise>
`

func emit(
	w *bufio.Writer,
	stream []tabelem.Element,
	measures []parser.Measure,
	summaries []measureContent,
	props map[int]*NoteProperties,
	res *parser.ParseResult,
	opts Options,
) error {
	if _, err := w.WriteString(prelude); err != nil {
		return err
	}

	partIdx := partIndexForMeasures(measures, res.Sections)

	for mi, m := range measures {
		if err := emitMeasure(w, mi, m, summaries[mi], stream, props, partIdx[mi], res, opts); err != nil {
			return err
		}
	}

	_, err := w.WriteString(epilogue)
	return err
}

func emitMeasure(
	w *bufio.Writer,
	mi int,
	m parser.Measure,
	content measureContent,
	stream []tabelem.Element,
	props map[int]*NoteProperties,
	partIdx int,
	res *parser.ParseResult,
	opts Options,
) error {
	if _, err := fmt.Fprintf(w, "    <measure number=\"%d\">\n", mi+1); err != nil {
		return err
	}

	beats, beatType := timeSignature(content.contentLen, opts)

	if _, err := w.WriteString("      <attributes>\n        <divisions>2</divisions>\n"); err != nil {
		return err
	}
	if mi == 0 {
		if _, err := fmt.Fprintf(w, "        <key>\n          <fifths>0</fifths>\n        </key>\n        <time>\n          <beats>%d</beats>\n          <beat-type>%d</beat-type>\n        </time>\n        <clef>\n          <sign>G</sign>\n          <line>2</line>\n        </clef>\n      </attributes>\n", beats, beatType); err != nil {
			return err
		}
	} else {
		if _, err := fmt.Fprintf(w, "        <time>\n          <beats>%d</beats>\n          <beat-type>%d</beat-type>\n        </time>\n      </attributes>\n", beats, beatType); err != nil {
			return err
		}
	}

	if m.Start > m.End || len(content.items) == 0 || allInvalid(content.items) {
		if err := emitRest(w, beats*8/beatType); err != nil {
			return err
		}
	} else {
		for _, it := range content.items {
			switch it.kind {
			case colRest:
				if err := emitRest(w, it.n); err != nil {
					return err
				}
			case colCopyTick:
				if err := emitTick(w, it.n, stream, props, partIdx, res, opts); err != nil {
					return err
				}
			}
		}
	}

	_, err := w.WriteString("    </measure>\n")
	return err
}

func allInvalid(items []colSummary) bool {
	for _, it := range items {
		if it.kind != colInvalid {
			return false
		}
	}
	return true
}

func timeSignature(contentLen int, opts Options) (beats, beatType int) {
	if contentLen == 0 {
		return 4, 4
	}
	if opts.SimplifyTimeSignature && contentLen%2 == 0 {
		return contentLen / 2, 4
	}
	return contentLen, 8
}

func emitRest(w *bufio.Writer, eighths int) error {
	for _, step := range []struct {
		dur  int
		name string
	}{{8, "whole"}, {4, "half"}, {2, "quarter"}, {1, "eighth"}} {
		for eighths >= step.dur {
			if _, err := fmt.Fprintf(w, "      <note>\n        <rest/>\n        <duration>%d</duration>\n        <type>%s</type>\n      </note>\n", step.dur, step.name); err != nil {
				return err
			}
			eighths -= step.dur
		}
	}
	return nil
}

func emitTick(
	w *bufio.Writer,
	tickStart int,
	stream []tabelem.Element,
	props map[int]*NoteProperties,
	partIdx int,
	res *parser.ParseResult,
	opts Options,
) error {
	first := true
	for s := 0; s < 6; s++ {
		idx := tickStart + s
		atom := stream[idx]
		if !atom.IsNote() {
			continue
		}
		note, ok := resolvePitch(s, atom.Fret, partIdx, res, opts)
		if !ok {
			first = false
			continue
		}

		if _, err := w.WriteString("      <note>\n"); err != nil {
			return err
		}
		if !first {
			if _, err := w.WriteString("        <chord/>\n"); err != nil {
				return err
			}
		}
		first = false

		if _, err := fmt.Fprintf(w, "        <pitch>\n          <step>%c</step>\n", note.Step); err != nil {
			return err
		}
		if note.Sharp {
			if _, err := w.WriteString("          <alter>1</alter>\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "          <octave>%d</octave>\n        </pitch>\n        <duration>1</duration>\n        <type>eighth</type>\n", note.Octave); err != nil {
			return err
		}
		if note.Sharp {
			if _, err := w.WriteString("        <accidental>sharp</accidental>\n"); err != nil {
				return err
			}
		}
		if atom.Kind == tabelem.KindDeadNote {
			if _, err := w.WriteString("        <notehead>x</notehead>\n"); err != nil {
				return err
			}
		}
		if err := emitNotations(w, props[idx]); err != nil {
			return err
		}
		if _, err := w.WriteString("      </note>\n"); err != nil {
			return err
		}
	}
	return nil
}

func emitNotations(w *bufio.Writer, p *NoteProperties) error {
	if p == nil || (len(p.Slurs) == 0 && p.Slide == nil && p.Vibrato == VibratoNone) {
		return nil
	}
	if _, err := w.WriteString("        <notations>\n"); err != nil {
		return err
	}
	for _, s := range p.Slurs {
		t := "stop"
		if s.Start {
			t = "start"
		}
		if _, err := fmt.Fprintf(w, "          <slur type=\"%s\" number=\"%d\"/>\n", t, s.Number); err != nil {
			return err
		}
	}
	if p.Slide != nil {
		t := "stop"
		if p.Slide.Start {
			t = "start"
		}
		if _, err := fmt.Fprintf(w, "          <slide type=\"%s\" number=\"%d\"/>\n", t, p.Slide.Number); err != nil {
			return err
		}
	}
	if p.Vibrato != VibratoNone {
		t := "stop"
		if p.Vibrato == VibratoStart {
			t = "start"
		}
		if _, err := fmt.Fprintf(w, "          <ornaments>\n            <wavy-line type=\"%s\"/>\n          </ornaments>\n", t); err != nil {
			return err
		}
	}
	_, err := w.WriteString("        </notations>\n")
	return err
}

func resolvePitch(stringPos int, fret uint8, partIdx int, res *parser.ParseResult, opts Options) (fretboard.Note, bool) {
	if opts.DynamicTuning {
		letterIdx := partIdx*6 + stringPos
		if letterIdx < len(res.BaseNotes) {
			if base, ok := fretboard.OpenSemitone(res.BaseNotes[letterIdx]); ok {
				return fretboard.NoteOfRune(base, fret), true
			}
		}
	}
	return fretboard.NoteOf(conventionalTuning[stringPos], fret)
}

func partIndexForMeasures(measures []parser.Measure, sections []parser.SectionOffset) []int {
	out := make([]int, len(measures))
	si := 0
	for mi, m := range measures {
		for si+1 < len(sections) && sections[si+1].Stream <= m.Start {
			si++
		}
		out[mi] = si
	}
	return out
}
