// Command scoreman converts six-string guitar tablature into MusicXML and
// MIDI, with a fixup pass that heals common authoring mistakes. The CLI
// surface (spec.md §6) is an external collaborator of the core: it owns
// file I/O, flag parsing, and diagnostic rendering, and none of that
// leaks back into parser/muxml/midi/fixup.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/algorithmiker/scoreman/config"
	"github.com/algorithmiker/scoreman/display"
	"github.com/algorithmiker/scoreman/fixup"
	"github.com/algorithmiker/scoreman/format"
	"github.com/algorithmiker/scoreman/midi"
	"github.com/algorithmiker/scoreman/muxml"
	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/player"
	"github.com/algorithmiker/scoreman/scoreerr"
	"github.com/algorithmiker/scoreman/strudel"
	"github.com/algorithmiker/scoreman/theory"
)

var (
	quiet         bool
	configPath    string
	trimMeasure   bool
	removeRest    bool
	simplifyTime  bool
	dynamicTuning bool
	dumpFormatted bool
	soundFont     string
	defaults      config.Defaults
)

func main() {
	root := &cobra.Command{
		Use:   "scoreman",
		Short: "Convert six-string tablature into MusicXML and MIDI",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			d, err := config.Load(configPath)
			if err != nil {
				return err
			}
			defaults = d
			if !cmd.Flags().Changed("quiet") && defaults.Quiet {
				quiet = true
			}
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress diagnostics")
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a scoreman.yaml config file")

	root.AddCommand(
		muxmlCmd(),
		midiCmd(),
		fixupCmd(),
		formatCmd(),
		playCmd(),
		scaleCmd(),
		strudelCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func muxmlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "muxml <input> <output>",
		Short: "Generate a MusicXML score-partwise document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("m") {
				trimMeasure = defaults.TrimMeasure
			}
			if !cmd.Flags().Changed("n") {
				removeRest = defaults.RemoveRestBetweenNotes
			}
			if !cmd.Flags().Changed("t") {
				simplifyTime = defaults.SimplifyTimeSignature
			}
			if !cmd.Flags().Changed("dynamic-tuning") {
				dynamicTuning = defaults.DynamicTuning
			}
			return runMuxml(args[0], args[1])
		},
	}
	cmd.Flags().BoolVarP(&trimMeasure, "m", "m", false, "trim leading/trailing rests per measure")
	cmd.Flags().BoolVarP(&removeRest, "n", "n", false, "remove an isolated rest between two notes")
	cmd.Flags().BoolVarP(&simplifyTime, "t", "t", false, "simplify the derived time signature")
	cmd.Flags().BoolVar(&dynamicTuning, "dynamic-tuning", false, "resolve pitches from captured base notes instead of standard tuning")
	return cmd
}

func midiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "midi <input> <output>",
		Short: "Generate a Standard MIDI File (Format 1)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMidi(args[0], args[1])
		},
	}
}

func fixupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixup <input> <output>",
		Short: "Heal common authoring mistakes and re-emit the tab source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixup(args[0], args[1])
		},
	}
	cmd.Flags().BoolVar(&dumpFormatted, "dump-formatted", false, "re-render via the format collaborator instead of emitting patched source verbatim")
	return cmd
}

func formatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "format <input> <output>",
		Short: "Pretty-print a tab file from its parsed structure",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(args[0], args[1])
		},
	}
}

func playCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <input>",
		Short: "Generate MIDI from a tab file and play it with FluidSynth",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if soundFont == "" {
				soundFont = defaults.SoundFont
			}
			return runPlay(args[0])
		},
	}
	cmd.Flags().StringVar(&soundFont, "soundfont", "", "path to a SoundFont (.sf2) file")
	return cmd
}

func scaleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scale <input> <root> <quality>",
		Short: "Overlay a scale on the tab's fretboard range",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScale(args[0], args[1], args[2])
		},
	}
}

func strudelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strudel <input> <output>",
		Short: "Export the tick stream as a Strudel mini-notation pattern",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStrudel(args[0], args[1])
		},
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOutput(path string) (io.Writer, func() error, error) {
	if path == "-" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func runMuxml(inPath, outPath string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, defaultParseOptions())
	reportDiagnostics(inPath, res.Diagnostics)
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}

	out, closeFn, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	gen := muxml.NewGenerator()
	diags, gerr := gen.Generate(&res.ParseResult, muxml.Options{
		TrimMeasure:            trimMeasure,
		RemoveRestBetweenNotes: removeRest,
		SimplifyTimeSignature:  simplifyTime,
		DynamicTuning:          dynamicTuning,
	}, out)
	reportDiagnostics(inPath, diags)
	if gerr != nil {
		return reportErr(inPath, res.Source, gerr)
	}
	return nil
}

func runMidi(inPath, outPath string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, defaultParseOptions())
	reportDiagnostics(inPath, res.Diagnostics)
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}

	out, closeFn, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if gerr := midi.Generate(&res.ParseResult, midi.Options{DynamicTuning: dynamicTuning}, out); gerr != nil {
		return reportErr(inPath, res.Source, gerr)
	}
	return nil
}

func runFixup(inPath, outPath string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, parseOptionsWithComments())
	reportDiagnostics(inPath, res.Diagnostics)

	out, closeFn, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if dumpFormatted {
		if res.Err != nil {
			return reportErr(inPath, res.Source, res.Err)
		}
		if ferr := format.Format(&res.ParseResult, out); ferr != nil {
			return reportErr(inPath, res.Source, ferr)
		}
		return nil
	}

	if _, err := out.Write(res.Source); err != nil {
		return err
	}
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}
	return nil
}

func runFormat(inPath, outPath string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, parseOptionsWithComments())
	reportDiagnostics(inPath, res.Diagnostics)
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}

	out, closeFn, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	if ferr := format.Format(&res.ParseResult, out); ferr != nil {
		return reportErr(inPath, res.Source, ferr)
	}
	return nil
}

func runPlay(inPath string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, defaultParseOptions())
	reportDiagnostics(inPath, res.Diagnostics)
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}

	tmp, err := os.CreateTemp("", "scoreman-*.mid")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if gerr := midi.Generate(&res.ParseResult, midi.Options{DynamicTuning: dynamicTuning}, tmp); gerr != nil {
		tmp.Close()
		return reportErr(inPath, res.Source, gerr)
	}
	tmp.Close()

	return player.PlayMIDIWithDisplay(tmp.Name(), soundFont, &res.ParseResult, quiet)
}

func runScale(inPath, root, quality string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, defaultParseOptions())
	reportDiagnostics(inPath, res.Diagnostics)
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}

	sc, err := theory.NewScale(root, quality)
	if err != nil {
		return err
	}
	display.ShowScaleOverlay(os.Stdout, &res.ParseResult, sc)
	return nil
}

func runStrudel(inPath, outPath string) error {
	src, err := readInput(inPath)
	if err != nil {
		return err
	}
	res := fixup.Run(src, defaultParseOptions())
	reportDiagnostics(inPath, res.Diagnostics)
	if res.Err != nil {
		return reportErr(inPath, res.Source, res.Err)
	}

	out, closeFn, err := openOutput(outPath)
	if err != nil {
		return err
	}
	defer closeFn()

	_, err = out.Write([]byte(strudel.Generate(&res.ParseResult)))
	return err
}

func defaultParseOptions() parser.Options {
	return parser.Options{CollectComments: false}
}

func parseOptionsWithComments() parser.Options {
	return parser.Options{CollectComments: true}
}

func reportDiagnostics(path string, diags []scoreerr.Diagnostic) {
	if quiet {
		return
	}
	for _, d := range diags {
		display.RenderDiagnostic(os.Stderr, path, d)
	}
}

func reportErr(path string, source []byte, err *scoreerr.Error) error {
	if !quiet {
		display.RenderError(os.Stderr, path, source, err)
	}
	return err
}
