package sim

import (
	"time"

	"go.uber.org/zap"

	"github.com/AgentService/vibe-arena/internal/combat"
	"github.com/AgentService/vibe-arena/internal/config"
	"github.com/AgentService/vibe-arena/internal/core/event"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/data"
	"github.com/AgentService/vibe-arena/internal/render"
	"github.com/AgentService/vibe-arena/internal/system"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// Sim owns the whole combat core: world state, damage pipeline, event
// bus, RNG streams, and the phase-ordered tick systems. One Sim is
// driven by exactly one goroutine at a fixed step; rendering reads
// end-of-tick snapshots independently.
type Sim struct {
	State    *world.State
	Bus      *event.Bus
	Pipeline *combat.DamagePipeline
	Streams  *Streams

	Melee       *system.MeleeSystem
	Projectiles *system.ProjectileSystem
	Director    *system.SpawnSystem

	runner   *coresys.Runner
	snapshot *system.SnapshotSystem
	tickRate time.Duration
}

// New builds a fully wired Sim. balance may be nil, which selects the
// built-in scaling.
func New(cfg *config.Config, archetypes *data.ArchetypeTable, waves *data.WaveTable, balance system.Balance, log *zap.Logger) *Sim {
	if balance == nil {
		balance = system.DefaultBalance{}
	}

	state := world.NewState(cfg.Pool.Capacity, cfg.Grid.CellSize)
	state.Player.Pos = vmath.V(cfg.Arena.Width/2, cfg.Arena.Height/2)

	bus := event.NewBus()
	streams := NewStreams(cfg.Sim)
	pipeline := combat.NewDamagePipeline(state, bus, streams.Crit, log)
	feedback := combat.NewFeedbackBuffer(state, bus)

	s := &Sim{
		State:    state,
		Bus:      bus,
		Pipeline: pipeline,
		Streams:  streams,
		runner:   coresys.NewRunner(),
		tickRate: cfg.Sim.TickRate.Std(),
	}

	s.Melee = system.NewMeleeSystem(state, pipeline)
	s.Projectiles = system.NewProjectileSystem(
		state, pipeline,
		cfg.Pool.ProjectileCapacity,
		cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.DespawnMargin,
	)
	s.Director = system.NewSpawnSystem(
		state, bus, archetypes, waves, balance, cfg.Waves,
		streams.Placement, streams.Archetype, log,
	)
	s.snapshot = system.NewSnapshotSystem(state, feedback)

	s.runner.Register(system.NewMovementSystem(state, cfg.Arena))
	s.runner.Register(s.Melee)
	s.runner.Register(s.Projectiles)
	s.runner.Register(s.Director)
	s.runner.Register(system.NewCleanupSystem(state, bus))
	s.runner.Register(s.snapshot)

	return s
}

// Tick advances the simulation one fixed step: movement → attack
// resolution → spawning → despawn cleanup → snapshot. The order is a
// correctness contract, enforced by the phase runner.
func (s *Sim) Tick() {
	s.runner.Tick(s.tickRate)
}

// TickRate returns the configured fixed step.
func (s *Sim) TickRate() time.Duration { return s.tickRate }

// Snapshot returns the most recently published render view. Safe to
// call from a render goroutine at any rate; the returned snapshot is
// immutable and may be held across ticks.
func (s *Sim) Snapshot() *render.Snapshot {
	return s.snapshot.Snapshot()
}
