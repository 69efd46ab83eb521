package scoreerr

// Location identifies where in the source an error or diagnostic applies.
// The zero value is NoLocation.
type Location struct {
	kind    locationKind
	line    int
	measure int
	column  int
}

type locationKind uint8

const (
	locNone locationKind = iota
	locLineOnly
	locLineAndMeasure
	locLineAndColumn
)

// NoLocation is a Location that carries no positional information.
var NoLocation = Location{kind: locNone}

// LineOnly builds a Location that only names a source line.
func LineOnly(line int) Location {
	return Location{kind: locLineOnly, line: line}
}

// LineAndMeasure builds a Location naming a line and a measure index on it.
func LineAndMeasure(line, measure int) Location {
	return Location{kind: locLineAndMeasure, line: line, measure: measure}
}

// LineAndColumn builds a Location naming a line and a 1-based column.
func LineAndColumn(line, column int) Location {
	return Location{kind: locLineAndColumn, line: line, column: column}
}

// Line returns the location's line index and whether one is present.
func (l Location) Line() (int, bool) {
	if l.kind == locNone {
		return 0, false
	}
	return l.line, true
}

// Column returns the location's 1-based column and whether one is present.
func (l Location) Column() (int, bool) {
	if l.kind != locLineAndColumn {
		return 0, false
	}
	return l.column, true
}

// Measure returns the location's measure index and whether one is present.
func (l Location) Measure() (int, bool) {
	if l.kind != locLineAndMeasure {
		return 0, false
	}
	return l.measure, true
}
