// Package midi is the MIDI sibling backend (spec.md §6): same tick stream,
// a different rendering. It emits a Standard MIDI File, Format 1, one track
// per string plus a meta track, using gitlab.com/gomidi/midi/v2 + smf —
// the library the teacher's midi/generator.go already wires in for its own
// chord/bass/drum tracks (see DESIGN.md).
package midi

import (
	"io"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/algorithmiker/scoreman/fretboard"
	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
)

const (
	ticksPerQuarter = 4
	eighthTicks     = ticksPerQuarter / 2
	tempoBPM        = 80.0
	velocity        = 100
	acousticGuitar  = 24
)

var conventionalTuning = [6]rune{'e', 'B', 'G', 'D', 'A', 'E'}

// TickDuration returns the wall-clock duration of one eighth-note tick at
// the tempo Generate renders with, for callers that need to step through a
// rendered file in lockstep (the `play` dashboard).
func TickDuration() time.Duration {
	return time.Duration(float64(time.Minute) / tempoBPM / 2)
}

// Options configures the tuning source, mirroring muxml.Options.
type Options struct {
	DynamicTuning bool
}

// Generate writes a Format-1 SMF for res to w: one NoteOn/NoteOff pair per
// eighth-note Fret or DeadNote atom on each string, rests advancing delta
// time, decorators producing no event of their own.
func Generate(res *parser.ParseResult, opts Options, w io.Writer) *scoreerr.Error {
	if len(res.TickStream) == 0 {
		return scoreerr.EmptyScoreErr()
	}

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerQuarter)

	var meta smf.Track
	meta.Add(0, smf.MetaTimeSig(4, 4, 24, 8))
	meta.Add(0, smf.MetaTempo(tempoBPM))
	meta.Close(0)
	s.Add(meta)

	numTicks := len(res.TickStream) / 6
	for str := 0; str < 6; str++ {
		var tr smf.Track
		tr.Add(0, midi.ProgramChange(uint8(str), acousticGuitar))

		var pending uint32
		for k := 0; k < numTicks; k++ {
			atom := res.TickStream[k*6+str]
			if !atom.IsNote() {
				pending += eighthTicks
				continue
			}
			key, ok := resolveKey(str, atom.Fret, k, res, opts)
			if !ok {
				pending += eighthTicks
				continue
			}
			tr.Add(pending, midi.NoteOn(uint8(str), key, velocity))
			tr.Add(eighthTicks, midi.NoteOff(uint8(str), key))
			pending = 0
		}
		tr.Close(pending)
		s.Add(tr)
	}

	if _, err := s.WriteTo(w); err != nil {
		return scoreerr.FromIOError(err)
	}
	return nil
}

func resolveKey(str int, fret uint8, tick int, res *parser.ParseResult, opts Options) (uint8, bool) {
	letter := conventionalTuning[str]
	if opts.DynamicTuning {
		partIdx := partIndexForTick(res.Sections, tick)
		if li := partIdx*6 + str; li < len(res.BaseNotes) {
			if _, ok := fretboard.OpenSemitone(res.BaseNotes[li]); ok {
				letter = res.BaseNotes[li]
			}
		}
	}
	base, ok := fretboard.OpenSemitone(letter)
	if !ok {
		return 0, false
	}
	return uint8(base + int(fret)), true
}

func partIndexForTick(sections []parser.SectionOffset, tick int) int {
	streamIdx := tick * 6
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
