// Package scoreerr carries the core's typed errors and diagnostics as owned
// values (see SPEC_FULL.md's ambient-stack section): a closed set of error
// Kinds, a Location that pinpoints the offending column, and a Diagnostic
// stream for non-fatal notes the fixup driver and CLI surface to the user.
package scoreerr

import "fmt"

// Kind is the closed set of error kinds the parser and generator can raise.
type Kind uint8

const (
	InvalidStringName Kind = iota
	NoClosingBarline
	InvalidCharacter
	FretTooLarge
	BothSlotsMultichar
	MultiBothSlotsFilled
	BendOnInvalid
	FixupFailed
	EmptyScore
	TickMismatch
	NoSuchFret
	IOError
	FmtError
)

func (k Kind) String() string {
	switch k {
	case InvalidStringName:
		return "InvalidStringName"
	case NoClosingBarline:
		return "NoClosingBarline"
	case InvalidCharacter:
		return "InvalidCharacter"
	case FretTooLarge:
		return "FretTooLarge"
	case BothSlotsMultichar:
		return "BothSlotsMultichar"
	case MultiBothSlotsFilled:
		return "MultiBothSlotsFilled"
	case BendOnInvalid:
		return "BendOnInvalid"
	case FixupFailed:
		return "FixupFailed"
	case EmptyScore:
		return "EmptyScore"
	case TickMismatch:
		return "TickMismatch"
	case NoSuchFret:
		return "NoSuchFret"
	case IOError:
		return "IOError"
	case FmtError:
		return "FmtError"
	default:
		return "Unknown"
	}
}

// Error is the core's error value. It owns everything it needs to display
// itself; unlike the system it was distilled from, it never borrows a slice
// of the original source (see SPEC_FULL.md's ambient-stack section).
type Error struct {
	Kind     Kind
	Location Location
	Lines    [2]int // inclusive relevant-line range for contextual display
	Detail   string
	Wrapped  error
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Wrapped }

func newLineErr(kind Kind, line int) *Error {
	return &Error{Kind: kind, Location: LineOnly(line), Lines: [2]int{line, line}}
}

// InvalidStringNameErr reports a tab line whose first byte is not
// alphanumeric, or that is missing the opening bar.
func InvalidStringNameErr(line int) *Error { return newLineErr(InvalidStringName, line) }

// NoClosingBarlineErr reports a tab line missing its trailing bar.
func NoClosingBarlineErr(line int) *Error { return newLineErr(NoClosingBarline, line) }

// InvalidCharacterErr reports a byte the tab-atom codec could not recognise.
func InvalidCharacterErr(line, column int, b byte) *Error {
	return &Error{
		Kind:     InvalidCharacter,
		Location: LineAndColumn(line, column),
		Lines:    [2]int{line, line},
		Detail:   fmt.Sprintf("byte %q", b),
	}
}

// FretTooLargeErr reports a fret digit run that overflowed a uint8.
func FretTooLargeErr(line, column int) *Error {
	return &Error{Kind: FretTooLarge, Location: LineAndColumn(line, column), Lines: [2]int{line, line}}
}

// BothSlotsMulticharErr reports two simultaneously multichar columns on
// different strings of the same tick.
func BothSlotsMulticharErr(lineA, columnA, lineB int) *Error {
	lo, hi := lineA, lineB
	if hi < lo {
		lo, hi = hi, lo
	}
	return &Error{
		Kind:     BothSlotsMultichar,
		Location: LineAndColumn(lineA, columnA),
		Lines:    [2]int{lo, hi},
	}
}

// MultiBothSlotsFilledErr reports resynchronisation finding two real atoms
// where one must have been filler.
func MultiBothSlotsFilledErr(line, column int) *Error {
	return &Error{Kind: MultiBothSlotsFilled, Location: LineAndColumn(line, column), Lines: [2]int{line, line}}
}

// BendOnInvalidErr reports a bend/hammer/pull/release whose preceding atom
// was not a Fret, so there is nothing to bend from.
func BendOnInvalidErr(line int) *Error { return newLineErr(BendOnInvalid, line) }

// FixupFailedErr reports the fixup driver making no forward progress.
func FixupFailedErr(loc Location, lines [2]int) *Error {
	return &Error{Kind: FixupFailed, Location: loc, Lines: lines}
}

// EmptyScoreErr reports a source with no parts in it.
func EmptyScoreErr() *Error {
	return &Error{Kind: EmptyScore, Location: NoLocation}
}

// TickMismatchErr reports two strings of the same measure disagreeing on
// tick count.
func TickMismatchErr(line, measure int, stringBefore, stringAfter rune, ticksBefore, ticksAfter int) *Error {
	return &Error{
		Kind:     TickMismatch,
		Location: LineAndMeasure(line, measure),
		Lines:    [2]int{line, line},
		Detail: fmt.Sprintf("%d ticks on string %c vs %d ticks on string %c",
			ticksBefore, stringBefore, ticksAfter, stringAfter),
	}
}

// NoSuchFretErr reports a fret that fretboard.NoteOf could not resolve.
func NoSuchFretErr(line, measure int, stringName rune, fret uint8) *Error {
	return &Error{
		Kind:     NoSuchFret,
		Location: LineAndMeasure(line, measure),
		Lines:    [2]int{line, line},
		Detail:   fmt.Sprintf("fret %d on string %c", fret, stringName),
	}
}

// FromIOError wraps a failed write to the output sink.
func FromIOError(err error) *Error {
	return &Error{Kind: IOError, Location: NoLocation, Wrapped: err}
}

// FromFmtError wraps a failed write to an internal buffer.
func FromFmtError(err error) *Error {
	return &Error{Kind: FmtError, Location: NoLocation, Wrapped: err}
}
