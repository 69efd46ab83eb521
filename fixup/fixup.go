// Package fixup wraps the parser in a bounded rewrite-and-retry loop that
// heals a small catalogue of authoring mistakes (spec.md §4.5). It owns a
// mutable copy of the input lines; the parser never sees anything but plain
// byte slices.
package fixup

import (
	"bytes"

	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
)

// ringSize is the number of trailing error locations the forward-progress
// guard remembers before giving up.
const ringSize = 5

// Result is what the driver produces: the parse result reached when it
// stopped (successful or not), the accumulated diagnostics, the patched
// source for a "fixup" output mode, and the unresolved error, if any.
type Result struct {
	ParseResult parser.ParseResult
	Diagnostics []scoreerr.Diagnostic
	Source      []byte
	Err         *scoreerr.Error
}

// Run drives the recovery loop to completion: either the parser succeeds,
// or an unfixable error is reached, or the location ring fills with five
// identical entries and FixupFailed is raised.
func Run(src []byte, opts parser.Options) Result {
	lines := parser.SplitLines(src)
	// own the bytes: the parser's slices alias these, and fixup overwrites
	// bytes in place on recoverable errors.
	owned := make([][]byte, len(lines))
	for i, l := range lines {
		owned[i] = append([]byte(nil), l...)
	}

	var ring [ringSize]scoreerr.Location
	ringLen := 0
	var diags []scoreerr.Diagnostic

	for {
		joined := bytes.Join(owned, []byte("\n"))
		res, parseDiags, err := parser.Parse(joined, opts)
		diags = append(diags, parseDiags...)

		if err == nil {
			return Result{ParseResult: res, Diagnostics: diags, Source: joined}
		}

		pushLocation(&ring, &ringLen, err.Location)
		if ringFull(ring, ringLen) {
			failed := scoreerr.FixupFailedErr(err.Location, err.Lines)
			return Result{ParseResult: res, Diagnostics: diags, Source: joined, Err: failed}
		}

		line, ok := err.Location.Line()
		if !ok || line < 0 || line >= len(owned) {
			return Result{ParseResult: res, Diagnostics: diags, Source: joined, Err: err}
		}

		switch err.Kind {
		case scoreerr.NoClosingBarline:
			owned[line] = append(bytes.TrimRight(owned[line], " \t\v\f"), '|')
			diags = append(diags, scoreerr.NewInfo(err.Location, scoreerr.FormatAddedBarline))

		case scoreerr.InvalidCharacter:
			col, ok := err.Location.Column()
			if !ok || col < 1 || col > len(owned[line]) {
				return Result{ParseResult: res, Diagnostics: diags, Source: joined, Err: err}
			}
			owned[line][col-1] = '-'
			diags = append(diags, scoreerr.NewInfo(err.Location, scoreerr.FormatReplacedInvalid))

		case scoreerr.MultiBothSlotsFilled:
			col, ok := err.Location.Column()
			if !ok || col < 1 || col+1 > len(owned[line]) {
				return Result{ParseResult: res, Diagnostics: diags, Source: joined, Err: err}
			}
			owned[line][col-1] = '-'
			owned[line][col] = '-'
			diags = append(diags, scoreerr.NewInfo(err.Location, scoreerr.FormatReplacedInvalid))

		default:
			return Result{ParseResult: res, Diagnostics: diags, Source: joined, Err: err}
		}
	}
}

func pushLocation(ring *[ringSize]scoreerr.Location, ringLen *int, loc scoreerr.Location) {
	for i := ringSize - 1; i > 0; i-- {
		ring[i] = ring[i-1]
	}
	ring[0] = loc
	if *ringLen < ringSize {
		*ringLen++
	}
}

func ringFull(ring [ringSize]scoreerr.Location, ringLen int) bool {
	if ringLen < ringSize {
		return false
	}
	first := ring[0]
	for i := 1; i < ringSize; i++ {
		if ring[i] != first {
			return false
		}
	}
	return true
}
