package display

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/algorithmiker/scoreman/parser"
)

var (
	primaryColor = lipgloss.Color("#00FFFF")
	dimColor     = lipgloss.Color("#666666")
	accentColor  = lipgloss.Color("#00FF00")
	rootColor    = lipgloss.Color("#FF6666")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF"))
	progressStyle = lipgloss.NewStyle().Foreground(accentColor)
	dimStyle      = lipgloss.NewStyle().Foreground(dimColor)
	headerStyle   = lipgloss.NewStyle().Foreground(primaryColor)
)

type watchTickMsg time.Time

// WatchModel is the bubbletea dashboard `scoreman play` shows on a TTY. The
// MIDI sibling's output is fully sequenced before FluidSynth starts, so
// there is no per-event feedback from the synth to watch; the model instead
// advances its own notion of the current tick against wall-clock time at
// the tempo midi.Generate rendered with.
type WatchModel struct {
	res          *parser.ParseResult
	preview      *TablaturePreview
	numTicks     int
	tickDuration time.Duration
	start        time.Time
	quitting     bool
}

// NewWatchModel builds a dashboard over res, advancing one tick every
// tickDuration once started.
func NewWatchModel(res *parser.ParseResult, tickDuration time.Duration) *WatchModel {
	return &WatchModel{
		res:          res,
		preview:      NewTablaturePreview(res, 8),
		numTicks:     len(res.TickStream) / 6,
		tickDuration: tickDuration,
	}
}

func (m *WatchModel) Init() tea.Cmd {
	m.start = time.Now()
	return watchTickCmd()
}

func watchTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg { return watchTickMsg(t) })
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
	case watchTickMsg:
		if m.currentTick() >= m.numTicks {
			m.quitting = true
			return m, tea.Quit
		}
		return m, watchTickCmd()
	}
	return m, nil
}

func (m *WatchModel) currentTick() int {
	if m.tickDuration <= 0 || m.numTicks == 0 {
		return m.numTicks
	}
	return int(time.Since(m.start) / m.tickDuration)
}

// IsQuitting reports whether the dashboard has quit, either because the user
// pressed q/ctrl+c/esc or because playback reached the last tick; it does not
// tell the two cases apart.
func (m *WatchModel) IsQuitting() bool { return m.quitting }

func (m *WatchModel) View() string {
	if m.quitting {
		return ""
	}
	tick := m.currentTick()
	measure := measureForTick(m.res, tick)

	header := titleStyle.Render("scoreman play") +
		dimStyle.Render(fmt.Sprintf("  tick %d/%d  measure %d", tick, m.numTicks, measure))
	bar := progressBar(tick, m.numTicks, 40)

	lines := []string{header, bar, ""}
	lines = append(lines, m.preview.Render(tick)...)
	lines = append(lines, "", dimStyle.Render("q to quit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func progressBar(cur, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := cur * width / total
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return progressStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func measureForTick(res *parser.ParseResult, tick int) int {
	streamIdx := tick * 6
	for i, m := range res.Measures {
		if streamIdx >= m.Start && streamIdx <= m.End {
			return i + 1
		}
	}
	return len(res.Measures)
}
