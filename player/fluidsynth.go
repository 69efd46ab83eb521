// Package player shells out to FluidSynth to play a rendered MIDI file,
// grounded on the teacher's player/fluidsynth.go soundfont discovery and
// TTY-aware display selection, repointed at scoreman's own generated MIDI
// rather than a backing-track arrangement.
package player

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/algorithmiker/scoreman/display"
	"github.com/algorithmiker/scoreman/midi"
	"github.com/algorithmiker/scoreman/parser"
)

// PlayMIDIWithDisplay plays midiFile through FluidSynth while showing a
// live dashboard of the originating tick stream: the bubbletea WatchModel
// on a TTY, or a plain progress line otherwise. quiet suppresses both.
func PlayMIDIWithDisplay(midiFile, customSoundFont string, res *parser.ParseResult, quiet bool) error {
	if _, err := exec.LookPath("fluidsynth"); err != nil {
		return fmt.Errorf("fluidsynth not found: please install with 'sudo apt install fluidsynth'")
	}

	soundFont, err := findSoundFont(customSoundFont)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Printf("Using SoundFont: %s\n", soundFont)
	}

	if quiet {
		return runFluidsynth(context.Background(), midiFile, soundFont)
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return playWithLegacyDisplay(midiFile, soundFont, res)
	}
	return playWithWatchModel(midiFile, soundFont, res)
}

func playWithWatchModel(midiFile, soundFont string, res *parser.ParseResult) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- runFluidsynth(ctx, midiFile, soundFont) }()

	model := display.NewWatchModel(res, midi.TickDuration())
	p := tea.NewProgram(model, tea.WithAltScreen())

	tuiDone := make(chan error, 1)
	go func() {
		_, err := p.Run()
		tuiDone <- err
	}()

	select {
	case err := <-done:
		p.Send(tea.Quit())
		<-tuiDone
		return err
	case err := <-tuiDone:
		cancel()
		<-done
		return err
	}
}

func playWithLegacyDisplay(midiFile, soundFont string, res *parser.ParseResult) error {
	live := display.NewLiveDisplay(res, midi.TickDuration())
	live.Start()
	defer live.Stop()
	return runFluidsynth(context.Background(), midiFile, soundFont)
}

func runFluidsynth(ctx context.Context, midiFile, soundFont string) error {
	cmd := exec.CommandContext(ctx, "fluidsynth",
		"-ni",
		"-q",
		"-r", "48000",
		"-g", "1.0",
		soundFont,
		midiFile,
	)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("fluidsynth error: %w", err)
	}
	return nil
}

// ListSoundFonts returns all available soundfonts on the system.
func ListSoundFonts() []string {
	var found []string

	localPatterns := []string{"./soundfonts/*.sf2", "./soundfonts/*.SF2"}
	for _, pattern := range localPatterns {
		if matches, err := filepath.Glob(pattern); err == nil {
			found = append(found, matches...)
		}
	}

	systemLocations := []string{
		"/usr/share/sounds/sf2/FluidR3_GM.sf2",
		"/usr/share/sounds/sf2/default.sf2",
		"/usr/share/soundfonts/FluidR3_GM.sf2",
		"/usr/share/soundfonts/default.sf2",
		"/usr/share/soundfonts/default-GM.sf2",
		"/usr/share/sounds/sf2/TimGM6mb.sf2",
	}
	for _, loc := range systemLocations {
		if _, err := os.Stat(loc); err == nil {
			found = append(found, loc)
		}
	}

	systemPatterns := []string{"/usr/share/sounds/sf2/*.sf2", "/usr/share/soundfonts/*.sf2"}
	for _, pattern := range systemPatterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			dup := false
			for _, f := range found {
				if f == m {
					dup = true
					break
				}
			}
			if !dup {
				found = append(found, m)
			}
		}
	}

	return found
}

// findSoundFont locates a SoundFont file on the system.
func findSoundFont(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
		return "", fmt.Errorf("soundfont not found: %s", customPath)
	}

	localPatterns := []string{"./soundfonts/*.sf2", "./soundfonts/*.SF2"}
	for _, pattern := range localPatterns {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	home, _ := os.UserHomeDir()
	userLocations := []string{
		filepath.Join(home, ".local/share/soundfonts"),
		filepath.Join(home, "soundfonts"),
	}
	for _, dir := range userLocations {
		if matches, err := filepath.Glob(filepath.Join(dir, "*.sf2")); err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	systemLocations := []string{
		"/usr/share/sounds/sf2/FluidR3_GM.sf2",
		"/usr/share/sounds/sf2/default.sf2",
		"/usr/share/soundfonts/FluidR3_GM.sf2",
		"/usr/share/soundfonts/default.sf2",
		"/usr/share/soundfonts/default-GM.sf2",
		"/usr/share/sounds/sf2/TimGM6mb.sf2",
	}
	for _, loc := range systemLocations {
		if _, err := os.Stat(loc); err == nil {
			return loc, nil
		}
	}

	patterns := []string{"/usr/share/sounds/sf2/*.sf2", "/usr/share/soundfonts/*.sf2"}
	for _, pattern := range patterns {
		if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
			return matches[0], nil
		}
	}

	return "", fmt.Errorf("no SoundFont (.sf2) file found. Please install fluid-soundfont-gm:\n" +
		"  sudo apt install fluid-soundfont-gm\n\n" +
		"Or place custom .sf2 files in ./soundfonts/ directory\n" +
		"Or specify with --soundfont flag")
}
