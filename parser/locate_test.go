package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateBasicChord(t *testing.T) {
	src := readFixture(t, "basic_chord.tab")
	res, _, err := Parse(src, Options{})
	require.Nil(t, err)

	lines := [][]byte{
		[]byte("e|---|"),
		[]byte("B|-3-|"),
		[]byte("G|6-6|"),
		[]byte("D|---|"),
		[]byte("A|---|"),
		[]byte("E|---|"),
	}

	// tick 0, string 2 (G) carries Fret(6) at source offset 2 into its line.
	line, col, ok := Locate(&res, 2)
	require.True(t, ok)
	assert.Equal(t, 2, line)
	require.True(t, col < len(lines[2]))
	assert.Equal(t, byte('6'), lines[2][col])

	// tick 1, string 1 (B) carries Fret(3).
	line, col, ok = Locate(&res, 7)
	require.True(t, ok)
	assert.Equal(t, 1, line)
	assert.Equal(t, byte('3'), lines[1][col])
}

func TestLocateMultichar(t *testing.T) {
	src := readFixture(t, "multichar_alignment.tab")
	res, _, err := Parse(src, Options{})
	require.Nil(t, err)

	gLine := []byte("G|10---12|")
	// tick 0, string 2 (G) carries Fret(10) starting at source offset 2.
	line, col, ok := Locate(&res, 2)
	require.True(t, ok)
	assert.Equal(t, 2, line)
	assert.Equal(t, byte('1'), gLine[col])
	assert.Equal(t, byte('0'), gLine[col+1])
}

func TestLocateOutOfRange(t *testing.T) {
	src := readFixture(t, "basic_chord.tab")
	res, _, err := Parse(src, Options{})
	require.Nil(t, err)

	_, _, ok := Locate(&res, -1)
	assert.False(t, ok)
	_, _, ok = Locate(&res, len(res.TickStream))
	assert.False(t, ok)
}
