// Package config loads optional default CLI flag values from
// ~/.scoreman.yaml using gopkg.in/yaml.v3 — the same library the teacher
// uses for its .btml track files (parser.LoadTrack) — so a user doesn't
// have to repeat flags like -t/-n/-m on every invocation.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults holds the subset of CLI flags a config file can pre-set. Flags
// passed on the command line always override these.
type Defaults struct {
	TrimMeasure            bool   `yaml:"trim_measure"`
	RemoveRestBetweenNotes bool   `yaml:"remove_rest_between_notes"`
	SimplifyTimeSignature  bool   `yaml:"simplify_time_signature"`
	DynamicTuning          bool   `yaml:"dynamic_tuning"`
	Quiet                  bool   `yaml:"quiet"`
	SoundFont              string `yaml:"soundfont"`
}

// Load reads path, or ~/.scoreman.yaml when path is empty. A missing file
// is not an error: it just yields zero-value Defaults.
func Load(path string) (Defaults, error) {
	var d Defaults

	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return d, nil
		}
		path = filepath.Join(home, ".scoreman.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, err
	}

	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, err
	}
	return d, nil
}
