package display

import (
	"strings"

	"github.com/algorithmiker/scoreman/parser"
)

// TablaturePreview renders a fixed window of the tick stream around a
// center tick as six aligned string lines, the same shape as the source
// tab itself, grounded on the teacher's tablature.go fretboard rendering
// but driven by the parsed tick stream instead of a chord progression.
type TablaturePreview struct {
	res   *parser.ParseResult
	width int // ticks shown on each side of the center tick
}

// NewTablaturePreview builds a preview over res showing width ticks on each
// side of whatever tick Render is asked for.
func NewTablaturePreview(res *parser.ParseResult, width int) *TablaturePreview {
	return &TablaturePreview{res: res, width: width}
}

// Render returns the six string lines plus a caret line marking centerTick,
// bordered in '|' the way a tab's bar columns are.
func (tp *TablaturePreview) Render(centerTick int) []string {
	numTicks := len(tp.res.TickStream) / 6
	if numTicks == 0 {
		return []string{"(empty)"}
	}

	lo := centerTick - tp.width
	hi := centerTick + tp.width
	if lo < 0 {
		lo = 0
	}
	if hi >= numTicks {
		hi = numTicks - 1
	}

	lines := make([]string, 6)
	caretCol := -1
	col := 0
	for k := lo; k <= hi; k++ {
		if k == centerTick {
			caretCol = col
		}
		w := 1
		for s := 0; s < 6; s++ {
			if width := tp.res.TickStream[k*6+s].Width(); width > w {
				w = width
			}
		}
		for s := 0; s < 6; s++ {
			rendered := tp.res.TickStream[k*6+s].Render()
			lines[s] += rendered + strings.Repeat("-", w-len(rendered))
		}
		col += w
	}

	out := make([]string, 0, 7)
	for _, l := range lines {
		out = append(out, "|"+l+"|")
	}
	if caretCol >= 0 {
		out = append(out, " "+strings.Repeat(" ", caretCol)+"^")
	}
	return out
}
