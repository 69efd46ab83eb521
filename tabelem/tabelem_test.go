package tabelem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadAtoms(t *testing.T) {
	cases := []struct {
		in   string
		want Element
		n    int
	}{
		{"-", Rest, 1},
		{"x", DeadNote, 1},
		{"0", NewFret(0), 1},
		{"6", NewFret(6), 1},
		{"12", NewFret(12), 2},
		{"255", NewFret(255), 3},
		{"b", Bend, 1},
		{"h", HammerOn, 1},
		{"p", Pull, 1},
		{"r", Release, 1},
		{"/", Slide, 1},
		{"\\", Slide, 1},
		{"~", Vibrato, 1},
	}
	for _, c := range cases {
		got, n, err := Read([]byte(c.in))
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
		assert.Equal(t, c.n, n)
	}
}

func TestReadInvalidCharacter(t *testing.T) {
	_, _, err := Read([]byte("?"))
	require.Error(t, err)
	re, ok := err.(*ReadError)
	require.True(t, ok)
	assert.Equal(t, ErrUnrecognised, re.Kind)
	assert.Equal(t, byte('?'), re.Byte)
}

func TestReadFretTooLarge(t *testing.T) {
	_, _, err := Read([]byte("999"))
	require.Error(t, err)
	re, ok := err.(*ReadError)
	require.True(t, ok)
	assert.Equal(t, ErrFretTooLarge, re.Kind)
}

func TestReadEmpty(t *testing.T) {
	_, _, err := Read(nil)
	require.Error(t, err)
}

func TestWidth(t *testing.T) {
	assert.Equal(t, 1, NewFret(0).Width())
	assert.Equal(t, 1, NewFret(9).Width())
	assert.Equal(t, 2, NewFret(10).Width())
	assert.Equal(t, 2, NewFret(99).Width())
	assert.Equal(t, 3, NewFret(100).Width())
	assert.Equal(t, 1, Rest.Width())
	assert.Equal(t, 1, Vibrato.Width())
}

func TestIsNoteAndIsDecorator(t *testing.T) {
	assert.True(t, NewFret(3).IsNote())
	assert.True(t, DeadNote.IsNote())
	assert.False(t, Rest.IsNote())
	assert.False(t, Bend.IsNote())

	assert.True(t, Bend.IsDecorator())
	assert.True(t, Slide.IsDecorator())
	assert.True(t, Vibrato.IsDecorator())
	assert.False(t, Rest.IsDecorator())
	assert.False(t, NewFret(3).IsDecorator())
}

func TestRenderRoundTrip(t *testing.T) {
	elems := []Element{Rest, DeadNote, NewFret(0), NewFret(12), Bend, HammerOn, Pull, Release, Slide, Vibrato}
	for _, e := range elems {
		got, n, err := Read([]byte(e.Render()))
		require.NoError(t, err)
		assert.Equal(t, len(e.Render()), n)
		assert.Equal(t, e, got)
	}
}

func TestSlideRendersCanonically(t *testing.T) {
	// Both '/' and '\\' parse to Slide, but Render always produces '/'.
	assert.Equal(t, "/", Slide.Render())
}
