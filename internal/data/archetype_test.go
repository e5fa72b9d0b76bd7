package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadArchetypeTable(t *testing.T) {
	path := writeFile(t, "archetypes.yaml", `
archetypes:
  - type_id: grunt
    base_health: 20
    base_speed: 60
    size_w: 20
    size_h: 20
    spawn_weight: 10
    damage: 5
    knockback: 12
    tags: [can_crit, vuln_fire]
  - type_id: brute
    base_health: 60
    base_speed: 35
    size_w: 40
    size_h: 40
    spawn_weight: 3
    damage: 12
`)

	tbl, err := LoadArchetypeTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Count())

	grunt := tbl.Get("grunt")
	require.NotNil(t, grunt)
	assert.Equal(t, 20.0, grunt.BaseHealth)
	assert.Equal(t, []string{"can_crit", "vuln_fire"}, grunt.Tags)

	assert.Nil(t, tbl.Get("missing"))
	assert.Equal(t, []string{"brute", "grunt"}, tbl.TypeIDs(), "sorted for stable iteration")
}

func TestLoadArchetypeTableMissingFile(t *testing.T) {
	_, err := LoadArchetypeTable(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestNewArchetypeTableValidation(t *testing.T) {
	valid := Archetype{TypeID: "grunt", BaseHealth: 20, BaseSpeed: 60, SizeW: 20, SizeH: 20, SpawnWeight: 10, Damage: 5}

	cases := []struct {
		name    string
		mutate  func(*Archetype)
		wantErr string
	}{
		{"empty type_id", func(a *Archetype) { a.TypeID = "" }, "empty type_id"},
		{"zero health", func(a *Archetype) { a.BaseHealth = 0 }, `archetype "grunt": base_health`},
		{"negative speed", func(a *Archetype) { a.BaseSpeed = -1 }, `archetype "grunt": base_speed`},
		{"zero size", func(a *Archetype) { a.SizeW = 0 }, `archetype "grunt": size`},
		{"negative weight", func(a *Archetype) { a.SpawnWeight = -1 }, `archetype "grunt": spawn_weight`},
		{"negative damage", func(a *Archetype) { a.Damage = -1 }, `archetype "grunt": damage`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := valid
			tc.mutate(&a)
			_, err := NewArchetypeTable([]Archetype{a})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestNewArchetypeTableDuplicate(t *testing.T) {
	a := Archetype{TypeID: "grunt", BaseHealth: 20, BaseSpeed: 60, SizeW: 20, SizeH: 20, SpawnWeight: 10}
	_, err := NewArchetypeTable([]Archetype{a, a})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate type_id")
}

func TestLoadWaveTable(t *testing.T) {
	path := writeFile(t, "waves.yaml", `
waves:
  - wave: 1
    budget: 8
    weights:
      grunt: 1
      brute: 0
  - wave: 2
    budget: 12
`)

	tbl, err := LoadWaveTable(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Count())

	w1 := tbl.Get(1)
	require.NotNil(t, w1)
	assert.Equal(t, 8, w1.Budget)
	assert.Equal(t, 0.0, w1.Weights["brute"])

	assert.Nil(t, tbl.Get(3), "waves past the table are procedural")
}

func TestWaveTableNilSafe(t *testing.T) {
	var tbl *WaveTable
	assert.Nil(t, tbl.Get(1))
	assert.Zero(t, tbl.Count())
}

func TestNewWaveTableValidation(t *testing.T) {
	_, err := NewWaveTable([]WaveEntry{{Wave: 0, Budget: 5}})
	assert.ErrorContains(t, err, "wave index must be positive")

	_, err = NewWaveTable([]WaveEntry{{Wave: 1, Budget: 0}})
	assert.ErrorContains(t, err, "budget must be positive")
}
