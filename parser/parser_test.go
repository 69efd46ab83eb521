package parser

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algorithmiker/scoreman/scoreerr"
	"github.com/algorithmiker/scoreman/tabelem"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	b, err := os.ReadFile("../testdata/" + name)
	require.NoError(t, err)
	return b
}

func TestBasicChord(t *testing.T) {
	src := readFixture(t, "basic_chord.tab")
	res, _, err := Parse(src, Options{})
	require.Nil(t, err)

	require.Len(t, res.TickStream, 18)
	require.Len(t, res.Measures, 1)
	assert.Equal(t, Measure{Start: 0, End: 17}, res.Measures[0])

	tick0 := res.TickStream[0:6]
	assert.Equal(t, []tabelem.Element{tabelem.Rest, tabelem.Rest, tabelem.NewFret(6), tabelem.Rest, tabelem.Rest, tabelem.Rest}, tick0)

	tick1 := res.TickStream[6:12]
	assert.Equal(t, []tabelem.Element{tabelem.Rest, tabelem.NewFret(3), tabelem.Rest, tabelem.Rest, tabelem.Rest, tabelem.Rest}, tick1)

	tick2 := res.TickStream[12:18]
	assert.Equal(t, []tabelem.Element{tabelem.Rest, tabelem.Rest, tabelem.NewFret(6), tabelem.Rest, tabelem.Rest, tabelem.Rest}, tick2)
}

func TestMultichar(t *testing.T) {
	src := readFixture(t, "multichar_alignment.tab")
	res, _, err := Parse(src, Options{})
	require.Nil(t, err)

	numTicks := len(res.TickStream) / 6
	assert.Equal(t, 5, numTicks)
	assert.Equal(t, tabelem.NewFret(10), res.TickStream[2])
}

func TestInvalidMultichar(t *testing.T) {
	src := readFixture(t, "invalid_multichar.tab")
	_, _, err := Parse(src, Options{})
	require.NotNil(t, err)
	assert.Equal(t, scoreerr.MultiBothSlotsFilled, err.Kind)
}

func TestStreamShapeInvariant(t *testing.T) {
	for _, fixture := range []string{"basic_chord.tab", "multichar_alignment.tab", "rest_between_notes.tab"} {
		src := readFixture(t, fixture)
		res, _, err := Parse(src, Options{})
		require.Nil(t, err, fixture)
		assert.Equal(t, 0, len(res.TickStream)%6, fixture)

		if len(res.Measures) > 0 {
			assert.Equal(t, 0, res.Measures[0].Start, fixture)
			assert.Equal(t, len(res.TickStream)-1, res.Measures[len(res.Measures)-1].End, fixture)
		}
	}
}

func TestNoClosingBarline(t *testing.T) {
	// Line 2 (index 1, the B string) is missing its trailing '|'. The first
	// and last of the six lines still pass the outer part-discovery check,
	// so this reaches parsePart and fails there.
	src := []byte("e|--|\nB|--\nG|--|\nD|--|\nA|--|\nE|--|\n")
	_, _, err := Parse(src, Options{})
	require.NotNil(t, err)
	assert.Equal(t, scoreerr.NoClosingBarline, err.Kind)
}

func TestInvalidStringName(t *testing.T) {
	// Line 2 (index 1, the B string) has no '|' in the second column; the
	// outer part-discovery loop only validates the first and last of the
	// six lines, so this reaches parsePart and fails there.
	src := []byte("e|--|\nBB|--|\nG|--|\nD|--|\nA|--|\nE|--|\n")
	_, _, err := Parse(src, Options{})
	require.NotNil(t, err)
	assert.Equal(t, scoreerr.InvalidStringName, err.Kind)
}

func TestCommentAndEmptyLineDiagnostics(t *testing.T) {
	src := []byte("// intro\n\ne|-|\nB|-|\nG|-|\nD|-|\nA|-|\nE|-|\n")
	res, diags, err := Parse(src, Options{CollectComments: true})
	require.Nil(t, err)
	require.Len(t, res.Comments, 1)
	assert.Equal(t, " intro", res.Comments[0].Text)

	var sawComment, sawEmpty bool
	for _, d := range diags {
		switch d.Kind {
		case scoreerr.CommentInPart:
			sawComment = true
		case scoreerr.EmptyLineInPart:
			sawEmpty = true
		}
	}
	assert.True(t, sawComment)
	assert.True(t, sawEmpty)
}

func TestEmptyScore(t *testing.T) {
	_, _, err := Parse([]byte(""), Options{})
	require.NotNil(t, err)
	assert.Equal(t, scoreerr.EmptyScore, err.Kind)
}
