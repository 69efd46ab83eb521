package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNoteOfTotality(t *testing.T) {
	letters := []rune{'e', 'd', 'B', 'G', 'D', 'A', 'E'}
	for _, l := range letters {
		for fret := uint8(0); fret <= 24; fret++ {
			_, ok := NoteOf(l, fret)
			assert.Truef(t, ok, "NoteOf(%q, %d) should resolve", l, fret)
		}
	}
}

func TestNoteOfRejectsUnknownLetter(t *testing.T) {
	_, ok := NoteOf('Z', 0)
	assert.False(t, ok)
}

func TestNoteOfOpenStrings(t *testing.T) {
	n, ok := NoteOf('E', 0)
	assert.True(t, ok)
	assert.Equal(t, E, n.Step)
	assert.False(t, n.Sharp)

	n, ok = NoteOf('A', 0)
	assert.True(t, ok)
	assert.Equal(t, A, n.Step)
}

func TestOpenSemitoneMatchesNoteOf(t *testing.T) {
	base, ok := OpenSemitone('E')
	assert.True(t, ok)
	assert.Equal(t, 40, base)

	viaNoteOfRune := NoteOfRune(base, 3)
	viaNoteOf, _ := NoteOf('E', 3)
	assert.Equal(t, viaNoteOf, viaNoteOfRune)
}

func TestOpenSemitoneUnknownLetter(t *testing.T) {
	_, ok := OpenSemitone('Z')
	assert.False(t, ok)
}
