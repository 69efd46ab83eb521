package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/theory"
)

var (
	rootSymbolStyle  = lipgloss.NewStyle().Foreground(rootColor)
	scaleSymbolStyle = lipgloss.NewStyle().Foreground(accentColor)
)

// FretboardDisplay renders a scale overlaid on the six-string fretboard.
type FretboardDisplay struct {
	scale     *theory.Scale
	numFrets  int
	positions [][]bool // [string][fret] = in scale
	roots     [][]bool // [string][fret] = is root
}

// NewFretboardDisplay builds a display for scale across frets 0..numFrets.
func NewFretboardDisplay(scale *theory.Scale, numFrets int) *FretboardDisplay {
	fd := &FretboardDisplay{scale: scale, numFrets: numFrets}
	if scale != nil {
		fd.positions, fd.roots = scale.GetFretboardPositions(numFrets)
	}
	return fd
}

// Render returns the fretboard as a slice of lines, high e string on top.
func (fd *FretboardDisplay) Render() []string {
	if fd.scale == nil {
		return []string{"No scale set"}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf(" %s", fd.scale.Name))
	lines = append(lines, "")

	fretHeader := "   "
	for fret := 0; fret <= fd.numFrets; fret++ {
		fretHeader += fmt.Sprintf("%2d ", fret)
	}
	lines = append(lines, fretHeader)

	stringOrder := []int{5, 4, 3, 2, 1, 0} // high e at top
	for _, stringIdx := range stringOrder {
		stringName := theory.GuitarStringNames[stringIdx]
		line := fmt.Sprintf(" %s │", stringName)
		for fret := 0; fret <= fd.numFrets; fret++ {
			line += fd.fretSymbol(stringIdx, fret) + " "
		}
		lines = append(lines, line)
	}

	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf(" %s  %s",
		rootSymbolStyle.Render("◆ Root"), scaleSymbolStyle.Render("● Scale")))
	return lines
}

func (fd *FretboardDisplay) fretSymbol(stringIdx, fret int) string {
	if fd.roots[stringIdx][fret] {
		return rootSymbolStyle.Render("◆")
	}
	if fd.positions[stringIdx][fret] {
		return scaleSymbolStyle.Render("●")
	}
	return "─"
}

// highestFret returns the largest fret number appearing anywhere in the
// tick stream, or 12 when no fret is higher, so the overlay covers at least
// twelve frets and extends to the tab's actual range beyond that.
func highestFret(res *parser.ParseResult) int {
	max := 12
	for _, e := range res.TickStream {
		if e.IsNote() && int(e.Fret) > max {
			max = int(e.Fret)
		}
	}
	return max
}

// ShowScaleOverlay writes a fretboard diagram highlighting sc's notes,
// sized to the highest fret actually used in res (never fewer than 12
// frets), to w.
func ShowScaleOverlay(w io.Writer, res *parser.ParseResult, sc *theory.Scale) {
	fd := NewFretboardDisplay(sc, highestFret(res))
	fmt.Fprintln(w, strings.Join(fd.Render(), "\n"))
}
