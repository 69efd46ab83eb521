// Package fretboard resolves a (string letter, fret) pair to a concert pitch
// on a fixed, conventionally-tuned six-string fretboard. It is a pure,
// allocation-free, O(1) lookup — there is no cache and no interior
// mutability, unlike the thread-local memoisation in the system this was
// distilled from.
package fretboard

// Step is one of the seven natural note names.
type Step byte

const (
	C Step = 'C'
	D Step = 'D'
	E Step = 'E'
	F Step = 'F'
	G Step = 'G'
	A Step = 'A'
	B Step = 'B'
)

// Note is a resolved pitch: step + sharp gives the chromatic semitone within
// an octave, Octave gives the register.
type Note struct {
	Step   Step
	Octave uint8
	Sharp  bool
}

// chromatic[i] is the note name for semitone i within an octave (C=0).
var chromatic = [12]struct {
	step  Step
	sharp bool
}{
	{C, false}, {C, true}, {D, false}, {D, true}, {E, false}, {F, false},
	{F, true}, {G, false}, {G, true}, {A, false}, {A, true}, {B, false},
}

// baseSemitone maps each conventional tuning letter to its open-string
// semitone, where octave 0 C = 0.
var baseSemitone = map[rune]int{
	'E': 40,
	'A': 45,
	'D': 50,
	'G': 55,
	'B': 59,
	'd': 62,
	'e': 64,
}

// NoteOf resolves fret on the conventionally-tuned string identified by
// stringLetter (one of e, d, B, G, D, A, E). It returns false for any other
// letter.
func NoteOf(stringLetter rune, fret uint8) (Note, bool) {
	base, ok := baseSemitone[stringLetter]
	if !ok {
		return Note{}, false
	}
	return noteAt(base + int(fret)), true
}

// NoteOfRune resolves fret against an explicit open-string semitone rather
// than the conventional tuning table, so a caller plumbing captured
// base-note letters through a re-tuned score can get true dynamic tuning
// (see SPEC_FULL.md's Open Question on dynamic base notes). openSemitone is
// interpreted the same way as baseSemitone's values.
func NoteOfRune(openSemitone int, fret uint8) Note {
	return noteAt(openSemitone + int(fret))
}

// OpenSemitone looks up the open-string semitone for a conventional tuning
// letter, the same table NoteOf uses. Callers plumbing a captured base-note
// rune through to NoteOfRune (dynamic tuning) use this to resolve it.
func OpenSemitone(stringLetter rune) (int, bool) {
	base, ok := baseSemitone[stringLetter]
	return base, ok
}

func noteAt(semitone int) Note {
	idx := semitone % 12
	c := chromatic[idx]
	return Note{Step: c.step, Sharp: c.sharp, Octave: uint8(semitone / 12)}
}
