package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// WaveEntry defines explicit parameters for one wave. Waves past the
// table fall back to the director's procedural scaling.
type WaveEntry struct {
	Wave    int                `yaml:"wave"`   // 1-based wave index
	Budget  int                `yaml:"budget"` // entities to spawn this wave
	Weights map[string]float64 `yaml:"weights,omitempty"` // per-type weight overrides
}

type waveListFile struct {
	Waves []WaveEntry `yaml:"waves"`
}

// WaveTable holds authored wave entries indexed by wave number.
type WaveTable struct {
	entries map[int]*WaveEntry
}

// LoadWaveTable loads the wave schedule from a YAML file.
func LoadWaveTable(path string) (*WaveTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read waves: %w", err)
	}
	var f waveListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse waves: %w", err)
	}
	return NewWaveTable(f.Waves)
}

// NewWaveTable builds a wave table from entries, validating each one.
func NewWaveTable(entries []WaveEntry) (*WaveTable, error) {
	t := &WaveTable{entries: make(map[int]*WaveEntry, len(entries))}
	for i := range entries {
		w := &entries[i]
		if w.Wave <= 0 {
			return nil, fmt.Errorf("wave entry %d: wave index must be positive, got %d", i, w.Wave)
		}
		if w.Budget <= 0 {
			return nil, fmt.Errorf("wave %d: budget must be positive, got %d", w.Wave, w.Budget)
		}
		t.entries[w.Wave] = w
	}
	return t, nil
}

// Get returns the authored entry for a wave, or nil when the wave is
// procedural.
func (t *WaveTable) Get(wave int) *WaveEntry {
	if t == nil {
		return nil
	}
	return t.entries[wave]
}

// Count returns the number of authored waves.
func (t *WaveTable) Count() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
