package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileYieldsZeroDefaults(t *testing.T) {
	d, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Defaults{}, d)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoreman.yaml")
	content := "trim_measure: true\nremove_rest_between_notes: true\nsoundfont: /opt/sf/guitar.sf2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.True(t, d.TrimMeasure)
	assert.True(t, d.RemoveRestBetweenNotes)
	assert.False(t, d.SimplifyTimeSignature)
	assert.Equal(t, "/opt/sf/guitar.sf2", d.SoundFont)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("trim_measure: [this is not a bool"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
