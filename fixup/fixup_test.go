package fixup

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/algorithmiker/scoreman/parser"
	"github.com/algorithmiker/scoreman/scoreerr"
)

func TestHealingTwoIterations(t *testing.T) {
	src, err := os.ReadFile("../testdata/fixup_healing.tab")
	require.NoError(t, err)

	res := Run(src, parser.Options{})
	require.Nil(t, res.Err)

	infoCount := 0
	for _, d := range res.Diagnostics {
		if d.Severity == scoreerr.Info {
			infoCount++
		}
	}
	assert.Equal(t, 2, infoCount)

	reparsed, _, reparseErr := parser.Parse(res.Source, parser.Options{})
	require.Nil(t, reparseErr)
	assert.NotEmpty(t, reparsed.TickStream)
}

func TestFixupSurfacesUnfixableErrorUnchanged(t *testing.T) {
	// BothSlotsMultichar (two genuinely multichar atoms disambiguated only
	// by the rest-absorption heuristic) has no recovery rule, so fixup
	// returns the error immediately instead of looping.
	src := []byte("e|12|\nB|-10|\nG|--|\nD|--|\nA|--|\nE|--|\n")
	res := Run(src, parser.Options{})
	require.NotNil(t, res.Err)
	assert.Equal(t, scoreerr.BothSlotsMultichar, res.Err.Kind)
}

func TestFixupAlreadyValidInputNeedsNoHealing(t *testing.T) {
	src, err := os.ReadFile("../testdata/basic_chord.tab")
	require.NoError(t, err)

	res := Run(src, parser.Options{})
	require.Nil(t, res.Err)
	for _, d := range res.Diagnostics {
		assert.NotEqual(t, scoreerr.FormatAddedBarline, d.Kind)
		assert.NotEqual(t, scoreerr.FormatReplacedInvalid, d.Kind)
	}
}
