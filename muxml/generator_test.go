package muxml

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algorithmiker/scoreman/parser"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("../testdata/" + name)
	require.NoError(t, err)
	return b
}

func TestHangingBendProducesPairedSlur(t *testing.T) {
	src := readFixture(t, "hanging_bend.tab")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var buf bytes.Buffer
	diags, err := NewGenerator().Generate(&res, Options{}, &buf)
	require.Nil(t, err)
	assert.Empty(t, diags)

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, `<slur type="start" number="1"/>`))
	assert.Equal(t, 1, strings.Count(out, `<slur type="stop" number="1"/>`))
	assert.Equal(t, 3, strings.Count(out, "<note>"))
}

func TestRestBetweenNotesOptimization(t *testing.T) {
	src := readFixture(t, "rest_between_notes.tab")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var buf bytes.Buffer
	diags, err := NewGenerator().Generate(&res, Options{RemoveRestBetweenNotes: true}, &buf)
	require.Nil(t, err)
	assert.Empty(t, diags)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "<note>"))
	assert.Contains(t, out, "<beats>3</beats>")
}

func TestRestBetweenNotesOptimizationIsRepeatable(t *testing.T) {
	src := readFixture(t, "rest_between_notes.tab")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var first, second bytes.Buffer
	_, err := NewGenerator().Generate(&res, Options{RemoveRestBetweenNotes: true}, &first)
	require.Nil(t, err)
	// Re-running Generate from the same ParseResult a second time must
	// yield byte-identical output: optimizeMeasures works on a copy of the
	// summaries and never mutates res itself.
	_, err = NewGenerator().Generate(&res, Options{RemoveRestBetweenNotes: true}, &second)
	require.Nil(t, err)
	assert.Equal(t, first.String(), second.String())
}

func TestBasicChordEmitsThreeNotesNoSlurs(t *testing.T) {
	src := readFixture(t, "basic_chord.tab")
	res, _, perr := parser.Parse(src, parser.Options{})
	require.Nil(t, perr)

	var buf bytes.Buffer
	diags, err := NewGenerator().Generate(&res, Options{}, &buf)
	require.Nil(t, err)
	assert.Empty(t, diags)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "<note>"))
	assert.NotContains(t, out, "<slur")
}

func TestEmptyStreamReturnsEmptyScoreError(t *testing.T) {
	res := parser.ParseResult{}
	var buf bytes.Buffer
	_, err := NewGenerator().Generate(&res, Options{}, &buf)
	require.NotNil(t, err)
}
