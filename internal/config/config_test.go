package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "arena.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultsAreValid(t *testing.T) {
	assert.NoError(t, Defaults().Validate())
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[sim]
tick_rate = "16ms"

[pool]
capacity = 64
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 16*time.Millisecond, cfg.Sim.TickRate.Std())
	assert.Equal(t, 64, cfg.Pool.Capacity)

	// Untouched sections keep defaults.
	assert.Equal(t, 256, cfg.Pool.ProjectileCapacity)
	assert.Equal(t, 100.0, cfg.Grid.CellSize)
	assert.Equal(t, []float64{24, 48, 64}, cfg.Tiers.Thresholds)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadBadDuration(t *testing.T) {
	_, err := Load(writeConfig(t, `
[sim]
tick_rate = "soon"
`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero capacity", func(c *Config) { c.Pool.Capacity = 0 }, "pool.capacity"},
		{"zero projectile capacity", func(c *Config) { c.Pool.ProjectileCapacity = 0 }, "pool.projectile_capacity"},
		{"zero cell size", func(c *Config) { c.Grid.CellSize = 0 }, "grid.cell_size"},
		{"zero tick rate", func(c *Config) { c.Sim.TickRate = 0 }, "sim.tick_rate"},
		{"empty thresholds", func(c *Config) { c.Tiers.Thresholds = nil }, "tiers.thresholds"},
		{"unsorted thresholds", func(c *Config) { c.Tiers.Thresholds = []float64{48, 24} }, "strictly ascending"},
		{"duplicate thresholds", func(c *Config) { c.Tiers.Thresholds = []float64{24, 24} }, "strictly ascending"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestDurationUnmarshalText(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("250ms")))
	assert.Equal(t, 250*time.Millisecond, d.Std())

	assert.Error(t, d.UnmarshalText([]byte("fast")))
}
