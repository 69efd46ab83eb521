// Package display renders diagnostics, errors, and fretboard overlays to the
// terminal using github.com/charmbracelet/lipgloss, the same styling library
// the teacher's TUI leans on for every colored element.
package display

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/algorithmiker/scoreman/scoreerr"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6666"))
	warnStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFF00"))
	whereStyle   = lipgloss.NewStyle().Bold(true)
	caretStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6666"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FFFF"))
)

// RenderDiagnostic prints one non-fatal Diagnostic to w.
func RenderDiagnostic(w io.Writer, path string, d scoreerr.Diagnostic) {
	style := warnStyle
	if d.Severity == scoreerr.Info {
		style = whereStyle
	}
	fmt.Fprintf(w, "%s: %s: %s\n", pathStyle.Render(path), style.Render(d.Severity.String()), d.Kind)
	if explainer := locationExplainer(d.Location); explainer != "" {
		fmt.Fprintf(w, "  %s %s\n", whereStyle.Render("Where:"), explainer)
	}
}

// RenderError prints a fatal *scoreerr.Error to w, including a caret under
// the offending column when the error carries one and source is available.
func RenderError(w io.Writer, path string, source []byte, err *scoreerr.Error) {
	fmt.Fprintf(w, "%s: %s: %s\n", pathStyle.Render(path), errorStyle.Render("Error"), err.Error())

	if explainer := locationExplainer(err.Location); explainer != "" {
		fmt.Fprintf(w, "  %s %s\n", whereStyle.Render("Where:"), explainer)
	}

	line, hasLine := err.Location.Line()
	col, hasCol := err.Location.Column()
	if !hasLine || len(source) == 0 {
		return
	}
	text, ok := sourceLine(source, line)
	if !ok {
		return
	}
	fmt.Fprintf(w, "  %s\n", sourceStyle.Render(text))
	if hasCol && col >= 1 {
		fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", col-1), caretStyle.Render("^"))
	}
}

// locationExplainer mirrors original_source's write_location_explainer: a
// one-line "Where:" caption whose shape depends on what the Location knows.
func locationExplainer(loc scoreerr.Location) string {
	line, ok := loc.Line()
	if !ok {
		return ""
	}
	if col, ok := loc.Column(); ok {
		return fmt.Sprintf("line %d char %d", line+1, col)
	}
	if m, ok := loc.Measure(); ok {
		return fmt.Sprintf("Measure %d in line %d", m+1, line+1)
	}
	return fmt.Sprintf("line %d", line+1)
}

func sourceLine(source []byte, n int) (string, bool) {
	sc := bufio.NewScanner(bytes.NewReader(source))
	for i := 0; sc.Scan(); i++ {
		if i == n {
			return sc.Text(), true
		}
	}
	return "", false
}
