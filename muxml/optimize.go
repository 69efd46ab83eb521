package muxml

import "github.com/algorithmiker/scoreman/parser"

// measureContent is one measure's column-summary buffer after pass 2, plus
// the eighth-note-equivalent content length used for the time signature.
type measureContent struct {
	items      []colSummary
	contentLen int
}

// optimizeMeasures slices the flat, tick-indexed summary buffer per measure
// and applies pass 2's three transforms (spec.md §4.6), in their fixed
// order. Applying them twice is a no-op: remove_rest_between_notes and
// trim_measure only fire on patterns that no longer exist once run once,
// and rest merge collapses each run of adjacent rests into its first entry,
// which leaves no two rests adjacent for a second merge to combine.
func optimizeMeasures(measures []parser.Measure, summaries []colSummary, opts Options) []measureContent {
	out := make([]measureContent, len(measures))
	for mi, m := range measures {
		if m.Start > m.End {
			out[mi] = measureContent{}
			continue
		}
		lo, hi := m.Start/6, m.End/6
		items := append([]colSummary(nil), summaries[lo:hi+1]...)
		contentLen := len(items)

		if opts.RemoveRestBetweenNotes {
			contentLen -= removeRestBetweenNotes(items)
		}
		mergeRests(items)
		if opts.TrimMeasure {
			contentLen -= trimMeasure(items)
		}

		out[mi] = measureContent{items: items, contentLen: contentLen}
	}
	return out
}

func removeRestBetweenNotes(items []colSummary) int {
	removed := 0
	for i := 0; i+2 < len(items); i++ {
		a, b, c := items[i], items[i+1], items[i+2]
		if a.kind == colCopyTick && b.kind == colRest && b.n == 1 && c.kind == colCopyTick {
			items[i+1].kind = colInvalid
			removed++
		} else if a.kind == colRest && a.n == 1 && b.kind == colCopyTick && c.kind == colRest && c.n == 1 {
			items[i].kind = colInvalid
			items[i+2].kind = colInvalid
			removed += 2
		}
	}
	return removed
}

func mergeRests(items []colSummary) {
	i := 0
	for i < len(items) {
		if items[i].kind != colRest {
			i++
			continue
		}
		j := i + 1
		run := items[i].n
		for j < len(items) && items[j].kind == colRest {
			run += items[j].n
			items[j].kind = colInvalid
			j++
		}
		items[i].n = run
		i = j
	}
}

func trimMeasure(items []colSummary) int {
	trimmed := 0
	for i := 0; i < len(items); i++ {
		if items[i].kind == colCopyTick {
			break
		}
		if items[i].kind == colRest {
			trimmed += items[i].n
			items[i].kind = colInvalid
		}
	}
	for i := len(items) - 1; i >= 0; i-- {
		if items[i].kind == colCopyTick {
			break
		}
		if items[i].kind == colRest {
			trimmed += items[i].n
			items[i].kind = colInvalid
		}
	}
	return trimmed
}
