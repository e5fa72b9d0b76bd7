package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Sim     SimConfig     `toml:"sim"`
	Pool    PoolConfig    `toml:"pool"`
	Grid    GridConfig    `toml:"grid"`
	Arena   ArenaConfig   `toml:"arena"`
	Waves   WavesConfig   `toml:"waves"`
	Tiers   TiersConfig   `toml:"tiers"`
	Logging LoggingConfig `toml:"logging"`
}

// Duration decodes TOML duration strings like "33ms".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

type SimConfig struct {
	TickRate      Duration `toml:"tick_rate"`
	PlacementSeed int64    `toml:"placement_seed"`
	ArchetypeSeed int64    `toml:"archetype_seed"`
	CritSeed      int64    `toml:"crit_seed"`
}

type PoolConfig struct {
	Capacity           int `toml:"capacity"`
	ProjectileCapacity int `toml:"projectile_capacity"`
}

type GridConfig struct {
	CellSize float64 `toml:"cell_size"`
}

type ArenaConfig struct {
	Width         float64 `toml:"width"`
	Height        float64 `toml:"height"`
	DespawnMargin float64 `toml:"despawn_margin"`
}

type WavesConfig struct {
	IdleDelayTicks int     `toml:"idle_delay_ticks"` // ticks in Idle before a wave auto-starts
	SpawnInterval  int     `toml:"spawn_interval"`   // ticks between spawn attempts while Spawning
	RingRadius     float64 `toml:"ring_radius"`      // spawn ring distance from the reference point
	MinSeparation  float64 `toml:"min_separation"`   // reject spawn spots closer than this to a live entity
	PlaceAttempts  int     `toml:"place_attempts"`   // ring samples tried before separation is waived
}

type TiersConfig struct {
	Thresholds []float64 `toml:"thresholds"` // ascending size cutoffs; len+1 tiers
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Pool.Capacity <= 0 {
		return fmt.Errorf("pool.capacity must be positive, got %d", c.Pool.Capacity)
	}
	if c.Pool.ProjectileCapacity <= 0 {
		return fmt.Errorf("pool.projectile_capacity must be positive, got %d", c.Pool.ProjectileCapacity)
	}
	if c.Grid.CellSize <= 0 {
		return fmt.Errorf("grid.cell_size must be positive, got %g", c.Grid.CellSize)
	}
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive, got %s", c.Sim.TickRate.Std())
	}
	if len(c.Tiers.Thresholds) == 0 {
		return fmt.Errorf("tiers.thresholds must not be empty")
	}
	for i := 1; i < len(c.Tiers.Thresholds); i++ {
		if c.Tiers.Thresholds[i] <= c.Tiers.Thresholds[i-1] {
			return fmt.Errorf("tiers.thresholds must be strictly ascending, got %v", c.Tiers.Thresholds)
		}
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Sim: SimConfig{
			TickRate:      Duration(33 * time.Millisecond), // ~30 Hz fixed step
			PlacementSeed: 1,
			ArchetypeSeed: 2,
			CritSeed:      3,
		},
		Pool: PoolConfig{
			Capacity:           500,
			ProjectileCapacity: 256,
		},
		Grid: GridConfig{
			CellSize: 100,
		},
		Arena: ArenaConfig{
			Width:         1920,
			Height:        1080,
			DespawnMargin: 200,
		},
		Waves: WavesConfig{
			IdleDelayTicks: 90,
			SpawnInterval:  3,
			RingRadius:     600,
			MinSeparation:  32,
			PlaceAttempts:  8,
		},
		Tiers: TiersConfig{
			Thresholds: []float64{24, 48, 64},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
