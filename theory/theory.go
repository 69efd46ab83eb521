// Package theory provides the scale tables behind the `scale` subcommand's
// fretboard overlay (spec.md §3 supplement): parsing a key/quality pair from
// the command line, and testing whether a given fretted MIDI note belongs to
// the resulting scale.
package theory

import (
	"fmt"
	"strings"
)

// ScaleType defines different scale types
type ScaleType string

const (
	ScalePentatonicMinor ScaleType = "pentatonic_minor"
	ScalePentatonicMajor ScaleType = "pentatonic_major"
	ScaleBlues           ScaleType = "blues"
	ScaleNaturalMinor    ScaleType = "natural_minor"
	ScaleNaturalMajor    ScaleType = "natural_major"
	ScaleDorian          ScaleType = "dorian"
	ScaleMixolydian      ScaleType = "mixolydian"
	ScaleHarmonicMinor   ScaleType = "harmonic_minor"
)

// ScaleIntervals maps scale types to their interval patterns (semitones from root)
var ScaleIntervals = map[ScaleType][]int{
	ScalePentatonicMinor: {0, 3, 5, 7, 10},        // R, b3, 4, 5, b7
	ScalePentatonicMajor: {0, 2, 4, 7, 9},         // R, 2, 3, 5, 6
	ScaleBlues:           {0, 3, 5, 6, 7, 10},     // R, b3, 4, b5, 5, b7
	ScaleNaturalMinor:    {0, 2, 3, 5, 7, 8, 10},  // R, 2, b3, 4, 5, b6, b7
	ScaleNaturalMajor:    {0, 2, 4, 5, 7, 9, 11},  // R, 2, 3, 4, 5, 6, 7
	ScaleDorian:          {0, 2, 3, 5, 7, 9, 10},  // R, 2, b3, 4, 5, 6, b7
	ScaleMixolydian:      {0, 2, 4, 5, 7, 9, 10},  // R, 2, 3, 4, 5, 6, b7
	ScaleHarmonicMinor:   {0, 2, 3, 5, 7, 8, 11},  // R, 2, b3, 4, 5, b6, 7
}

// ScaleNames maps scale types to display names
var ScaleNames = map[ScaleType]string{
	ScalePentatonicMinor: "Minor Pentatonic",
	ScalePentatonicMajor: "Major Pentatonic",
	ScaleBlues:           "Blues",
	ScaleNaturalMinor:    "Natural Minor",
	ScaleNaturalMajor:    "Major",
	ScaleDorian:          "Dorian",
	ScaleMixolydian:      "Mixolydian",
	ScaleHarmonicMinor:   "Harmonic Minor",
}

// NoteNames for display (sharps)
var NoteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteNamesFlat for display (flats)
var NoteNamesFlat = []string{"C", "Db", "D", "Eb", "E", "F", "Gb", "G", "Ab", "A", "Bb", "B"}

// GuitarTuning is standard tuning MIDI note numbers (low to high: E2, A2, D3, G3, B3, E4)
var GuitarTuning = []int{40, 45, 50, 55, 59, 64}

// GuitarStringNames for display
var GuitarStringNames = []string{"E", "A", "D", "G", "B", "e"}

// Scale represents a musical scale with intervals from root
type Scale struct {
	Name      string    // e.g., "A Minor Pentatonic"
	Type      ScaleType // The scale type
	Root      int       // MIDI note offset (0-11, where C=0)
	RootName  string    // Display name of root (e.g., "A", "Bb")
	Intervals []int     // Semitones from root
}

// NewScale parses a root note name (e.g. "A", "Bb", "F#") and a scale
// quality (e.g. "minor_pentatonic", "dorian", or any key accepted by
// ScaleTypeFromString) and builds the corresponding Scale.
func NewScale(rootName, quality string) (*Scale, error) {
	if strings.TrimSpace(rootName) == "" {
		return nil, fmt.Errorf("theory: empty root note")
	}
	root := NoteToMidi(rootName)
	scaleType := ScaleTypeFromString(quality)
	return newScale(root, scaleType), nil
}

func newScale(root int, scaleType ScaleType) *Scale {
	root = ((root % 12) + 12) % 12
	intervals, ok := ScaleIntervals[scaleType]
	if !ok {
		intervals = ScaleIntervals[ScalePentatonicMinor]
		scaleType = ScalePentatonicMinor
	}

	scaleName := ScaleNames[scaleType]
	rootName := NoteNames[root]

	return &Scale{
		Name:      rootName + " " + scaleName,
		Type:      scaleType,
		Root:      root,
		RootName:  rootName,
		Intervals: intervals,
	}
}

// ParseKey parses a key string (e.g., "Am", "Bb", "F#m") and returns root (0-11) and isMinor
func ParseKey(keyStr string) (root int, isMinor bool) {
	keyStr = strings.TrimSpace(keyStr)
	if keyStr == "" {
		return 0, false // Default to C major
	}

	isMinor = strings.HasSuffix(strings.ToLower(keyStr), "m") &&
		!strings.HasSuffix(strings.ToLower(keyStr), "maj")

	rootStr := keyStr
	if isMinor {
		rootStr = keyStr[:len(keyStr)-1]
	}

	root = NoteToMidi(rootStr)
	return root, isMinor
}

// NoteToMidi converts a note name to MIDI offset (0-11)
func NoteToMidi(note string) int {
	note = strings.TrimSpace(note)
	if note == "" {
		return 0
	}

	noteMap := map[string]int{
		"C": 0, "C#": 1, "Db": 1,
		"D": 2, "D#": 3, "Eb": 3,
		"E": 4, "Fb": 4, "E#": 5,
		"F": 5, "F#": 6, "Gb": 6,
		"G": 7, "G#": 8, "Ab": 8,
		"A": 9, "A#": 10, "Bb": 10,
		"B": 11, "Cb": 11, "B#": 0,
	}

	if midi, ok := noteMap[note]; ok {
		return midi
	}

	if len(note) >= 1 {
		base := strings.ToUpper(string(note[0]))
		if len(note) >= 2 {
			accidental := string(note[1])
			if accidental == "#" || accidental == "b" {
				if midi, ok := noteMap[base+accidental]; ok {
					return midi
				}
			}
		}
		if midi, ok := noteMap[base]; ok {
			return midi
		}
	}

	return 0 // Default to C
}

// MidiToNote converts a MIDI offset (0-11) to note name
func MidiToNote(midi int) string {
	return NoteNames[((midi%12)+12)%12]
}

// ContainsNote checks if a MIDI note is in the scale
func (s *Scale) ContainsNote(midiNote int) bool {
	noteInOctave := midiNote % 12
	relativeToRoot := (noteInOctave - s.Root + 12) % 12

	for _, interval := range s.Intervals {
		if interval == relativeToRoot {
			return true
		}
	}
	return false
}

// IsRoot checks if a MIDI note is the root of the scale
func (s *Scale) IsRoot(midiNote int) bool {
	return midiNote%12 == s.Root
}

// GetFretboardPositions returns a 2D array [string][fret] indicating scale notes
// Returns: positions[stringIndex][fretIndex] = true if note is in scale
// Also returns: roots[stringIndex][fretIndex] = true if note is root
func (s *Scale) GetFretboardPositions(numFrets int) (positions [][]bool, roots [][]bool) {
	positions = make([][]bool, 6)
	roots = make([][]bool, 6)

	for stringIdx := 0; stringIdx < 6; stringIdx++ {
		positions[stringIdx] = make([]bool, numFrets+1)
		roots[stringIdx] = make([]bool, numFrets+1)
		openNote := GuitarTuning[stringIdx]

		for fret := 0; fret <= numFrets; fret++ {
			midiNote := openNote + fret
			positions[stringIdx][fret] = s.ContainsNote(midiNote)
			roots[stringIdx][fret] = s.IsRoot(midiNote)
		}
	}

	return positions, roots
}

// GetScaleNotes returns all MIDI notes in the scale within a range
func (s *Scale) GetScaleNotes(lowNote, highNote int) []int {
	notes := []int{}
	for midi := lowNote; midi <= highNote; midi++ {
		if s.ContainsNote(midi) {
			notes = append(notes, midi)
		}
	}
	return notes
}

// ScaleTypeFromString converts a string to ScaleType
func ScaleTypeFromString(s string) ScaleType {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "pentatonic_minor", "minor_pentatonic", "pentatonic minor":
		return ScalePentatonicMinor
	case "pentatonic_major", "major_pentatonic", "pentatonic major":
		return ScalePentatonicMajor
	case "blues":
		return ScaleBlues
	case "natural_minor", "minor", "aeolian":
		return ScaleNaturalMinor
	case "natural_major", "major", "ionian":
		return ScaleNaturalMajor
	case "dorian":
		return ScaleDorian
	case "mixolydian":
		return ScaleMixolydian
	case "harmonic_minor":
		return ScaleHarmonicMinor
	default:
		return ScalePentatonicMinor
	}
}
