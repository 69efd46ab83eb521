// Package parser consumes raw tab source and produces a ParseResult: an
// interleaved tick stream, a measure index, base notes, and section offsets
// (see SPEC_FULL.md §0 and spec.md §3-§4.3). Parsing never panics on bad
// input; the first error found is returned alongside whatever partial result
// had already been built, so a caller such as the fixup driver can inspect
// both.
package parser

import (
	"bytes"

	"github.com/algorithmiker/scoreman/scoreerr"
	"github.com/algorithmiker/scoreman/tabelem"
)

// Measure is an inclusive range of tick-stream indices. Start > End marks an
// empty measure (a bar immediately followed by another bar, or a part with
// no ticks at all) and renders as a single full-measure rest.
type Measure struct {
	Start, End int
}

// SectionOffset marks where a six-line part begins, both in the source and
// in the tick stream.
type SectionOffset struct {
	Line   int
	Stream int
}

// Comment is a //-prefixed line found between parts, kept only when Options
// asks for it.
type Comment struct {
	Line int
	Text string
}

// ParseResult is the parser's output (spec.md §3).
type ParseResult struct {
	TickStream []tabelem.Element
	Measures   []Measure
	BaseNotes  []rune
	Sections   []SectionOffset
	Comments   []Comment
}

// Options tunes what the parser collects beyond the core tick stream.
type Options struct {
	// CollectComments keeps //-prefixed lines found between parts instead of
	// discarding them (spec.md §4.3 "Part discovery").
	CollectComments bool
}

// Parse scans src for six-line parts and builds the tick stream. It returns
// the partial result built so far together with the first error, and any
// informational diagnostics raised while scanning between parts.
func Parse(src []byte, opts Options) (ParseResult, []scoreerr.Diagnostic, *scoreerr.Error) {
	lines := SplitLines(src)
	var res ParseResult
	var diags []scoreerr.Diagnostic

	i := 0
	for i+6 <= len(lines) {
		if !isTabLine(lines[i]) {
			switch {
			case isCommentLine(lines[i]):
				if opts.CollectComments {
					res.Comments = append(res.Comments, Comment{Line: i, Text: commentBody(lines[i])})
				}
				diags = append(diags, scoreerr.NewInfo(scoreerr.LineOnly(i), scoreerr.CommentInPart))
			case len(trimASCII(lines[i])) == 0:
				diags = append(diags, scoreerr.NewInfo(scoreerr.LineOnly(i), scoreerr.EmptyLineInPart))
			}
			i++
			continue
		}
		if !isTabLine(lines[i+5]) {
			i++
			continue
		}
		if err := parsePart(lines, i, &res); err != nil {
			return res, diags, err
		}
		i += 6
	}

	if len(res.Sections) == 0 {
		return res, diags, scoreerr.EmptyScoreErr()
	}
	return res, diags, nil
}

// parsePart consumes the six lines starting at startLine, appending to res.
func parsePart(lines [][]byte, startLine int, res *ParseResult) *scoreerr.Error {
	res.Sections = append(res.Sections, SectionOffset{Line: startLine, Stream: len(res.TickStream)})

	var body [6][]byte
	var origLen [6]int
	for s := 0; s < 6; s++ {
		trimmed := trimASCII(lines[startLine+s])
		if len(trimmed) < 2 || !isAlnum(trimmed[0]) || trimmed[1] != '|' {
			return scoreerr.InvalidStringNameErr(startLine + s)
		}
		if trimmed[len(trimmed)-1] != '|' {
			return scoreerr.NoClosingBarlineErr(startLine + s)
		}
		res.BaseNotes = append(res.BaseNotes, rune(trimmed[0]))
		body[s] = trimmed[2 : len(trimmed)-1]
		origLen[s] = len(body[s])
	}

	col := func(s int) int { return 3 + origLen[s] - len(body[s]) }

	measureStart := len(res.TickStream)
	budget := len(body[0])
	tick := 0

	for tick < budget {
		if len(body[0]) > 0 && body[0][0] == '|' {
			res.Measures = append(res.Measures, Measure{Start: measureStart, End: len(res.TickStream) - 1})
			for s := 0; s < 6; s++ {
				body[s] = body[s][1:]
			}
			budget--
			measureStart = len(res.TickStream)
			continue
		}

		var atomCol [6]int
		var multi [6]bool
		anyMulti := false
		tickStart := len(res.TickStream)

		for s := 0; s < 6; s++ {
			atomCol[s] = col(s)
			atom, n, err := tabelem.Read(body[s])
			if err != nil {
				return classifyReadError(err, startLine+s, atomCol[s])
			}
			res.TickStream = append(res.TickStream, atom)
			body[s] = body[s][n:]
			if n > 1 {
				multi[s] = true
				anyMulti = true
			}
		}

		if anyMulti {
			budget--
			anchor := -1
			for s := 0; s < 6; s++ {
				if multi[s] {
					anchor = s
					break
				}
			}
			for s := 0; s < 6; s++ {
				if multi[s] {
					continue
				}
				if res.TickStream[tickStart+s].Kind == tabelem.KindRest {
					nc := col(s)
					next, n2, err := tabelem.Read(body[s])
					if err != nil {
						return classifyReadError(err, startLine+s, nc)
					}
					if n2 > 1 {
						return scoreerr.BothSlotsMulticharErr(startLine+anchor, atomCol[anchor], startLine+s)
					}
					res.TickStream[tickStart+s] = next
					body[s] = body[s][n2:]
				} else if len(body[s]) > 0 && body[s][0] == '-' {
					body[s] = body[s][1:]
				} else {
					return scoreerr.MultiBothSlotsFilledErr(startLine+s, col(s))
				}
			}
		}

		tick++
	}

	res.Measures = append(res.Measures, Measure{Start: measureStart, End: len(res.TickStream) - 1})
	return nil
}

func classifyReadError(err error, line, column int) *scoreerr.Error {
	re, ok := err.(*tabelem.ReadError)
	if !ok {
		return scoreerr.FromFmtError(err)
	}
	if re.Kind == tabelem.ErrFretTooLarge {
		return scoreerr.FretTooLargeErr(line, column)
	}
	return scoreerr.InvalidCharacterErr(line, column, re.Byte)
}

// SplitLines splits src into lines without their terminators, accepting
// CR, LF, or CRLF line endings. Exported so the fixup driver can mutate the
// same line boundaries the parser sees.
func SplitLines(src []byte) [][]byte {
	var lines [][]byte
	start := 0
	i := 0
	for i < len(src) {
		switch src[i] {
		case '\n':
			lines = append(lines, src[start:i])
			i++
			start = i
		case '\r':
			lines = append(lines, src[start:i])
			i++
			if i < len(src) && src[i] == '\n' {
				i++
			}
			start = i
		default:
			i++
		}
	}
	if start < len(src) {
		lines = append(lines, src[start:])
	}
	return lines
}

func isAlnum(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

func trimASCII(line []byte) []byte {
	return bytes.TrimFunc(line, func(r rune) bool { return r < 256 && isWhitespace(byte(r)) })
}

func isTabLine(line []byte) bool {
	t := trimASCII(line)
	if len(t) < 3 {
		return false
	}
	return isAlnum(t[0]) && t[1] == '|' && t[len(t)-1] == '|'
}

func isCommentLine(line []byte) bool {
	return bytes.HasPrefix(trimASCII(line), []byte("//"))
}

func commentBody(line []byte) string {
	t := trimASCII(line)
	return string(bytes.TrimPrefix(t, []byte("//")))
}
