package muxml

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
)

func TestBendWithNoPrecedingFretFails(t *testing.T) {
	src := []byte("e|-|\nB|-|\nG|b|\nD|-|\nA|-|\nE|-|\n")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var buf bytes.Buffer
	_, err := NewGenerator().Generate(&res, Options{}, &buf)
	require.NotNil(t, err)
	assert.Equal(t, scoreerr.BendOnInvalid, err.Kind)
}

func TestVibratoAtPartStartWarnsInsteadOfFailing(t *testing.T) {
	src := []byte("e|-|\nB|-|\nG|~|\nD|-|\nA|-|\nE|-|\n")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var buf bytes.Buffer
	diags, err := NewGenerator().Generate(&res, Options{}, &buf)
	require.Nil(t, err)
	require.Len(t, diags, 1)
	assert.Equal(t, scoreerr.VibratoAtPartStart, diags[0].Kind)
}

func TestSlurSpanAlwaysPairsStartAndStop(t *testing.T) {
	// A hammer-on in the middle of a longer run has both a preceding fret
	// and a following tick, so no materialisation is needed; it still
	// must produce exactly one start and one matching stop.
	src := []byte("e|5h3|\nB|---|\nG|---|\nD|---|\nA|---|\nE|---|\n")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var buf bytes.Buffer
	diags, err := NewGenerator().Generate(&res, Options{}, &buf)
	require.Nil(t, err)
	assert.Empty(t, diags)

	out := buf.String()
	assert.Equal(t, 1, countSubstr(out, `type="start" number="1"`))
	assert.Equal(t, 1, countSubstr(out, `type="stop" number="1"`))
}

func countSubstr(s, sub string) int {
	n := 0
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			n++
		}
	}
	return n
}
