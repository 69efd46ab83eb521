// Package strudel exports a parsed tick stream as a Strudel/Tidal
// mini-notation pattern: one `n()` sequence per string, combined in a
// single `stack(...)` call, grounded on the teacher's strudel/generator.go layering of
// chord/bass/drum patterns under a single stack() call.
package strudel

import (
	"fmt"
	"strings"

	"github.com/algorithmiker/scoreman/fretboard"
	"github.com/algorithmiker/scoreman/parser"
)

var conventionalTuning = [6]rune{'e', 'B', 'G', 'D', 'A', 'E'}

const tempoBPM = 80

// Generate renders res's tick stream as a Strudel pattern: six stacked
// sequences, one per string, a "~" mini-notation rest for every non-note
// tick and the fretted MIDI note number for every Fret/DeadNote tick.
func Generate(res *parser.ParseResult) string {
	numTicks := len(res.TickStream) / 6
	if numTicks == 0 {
		return "silence"
	}

	var layers []string
	for str := 0; str < 6; str++ {
		layers = append(layers, stringPattern(res, str, numTicks))
	}

	var sb strings.Builder
	sb.WriteString("stack(\n")
	for i, layer := range layers {
		sb.WriteString("  " + layer)
		if i < len(layers)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(")")
	sb.WriteString(fmt.Sprintf("\n  .cpm(%d/2)", tempoBPM))
	return sb.String()
}

func stringPattern(res *parser.ParseResult, str, numTicks int) string {
	tokens := make([]string, numTicks)
	for k := 0; k < numTicks; k++ {
		atom := res.TickStream[k*6+str]
		if !atom.IsNote() {
			tokens[k] = "~"
			continue
		}
		base, ok := fretboard.OpenSemitone(conventionalTuning[str])
		if !ok {
			tokens[k] = "~"
			continue
		}
		tokens[k] = fmt.Sprintf("%d", base+int(atom.Fret))
	}
	return fmt.Sprintf(`n("%s")`, strings.Join(tokens, " "))
}
