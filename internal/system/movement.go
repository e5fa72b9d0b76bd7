package system

import (
	"time"

	"github.com/AgentService/vibe-arena/internal/config"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// MovementSystem integrates enemy velocities and keeps the spatial
// grid in lockstep: Grid.Move is called exactly once per moved entity,
// in the same tick, so no query ever sees a stale bucket. Entities
// that leave the arena past the despawn margin are force-despawned.
// Phase 0 (Movement) — attack resolvers must see this tick's
// positions.
type MovementSystem struct {
	state *world.State
	arena config.ArenaConfig
}

func NewMovementSystem(state *world.State, arena config.ArenaConfig) *MovementSystem {
	return &MovementSystem{state: state, arena: arena}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhaseMovement }

func (s *MovementSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	target := s.state.Player.Pos
	s.state.Store.EachAlive(func(idx int, r *world.EnemyRecord) {
		// Simple pursuit: home on the player at archetype speed.
		r.Vel = target.Sub(r.Pos).Normalize().Scale(r.Speed)

		oldPos := r.Pos
		r.Pos = r.Pos.Add(r.Vel.Scale(step))
		s.state.Grid.Move(idx, oldPos, r.Pos)

		if s.outOfBounds(r.Pos) {
			s.state.ForceDespawn(idx)
		}
	})
}

func (s *MovementSystem) outOfBounds(p vmath.Vec2) bool {
	m := s.arena.DespawnMargin
	return p.X < -m || p.X > s.arena.Width+m || p.Y < -m || p.Y > s.arena.Height+m
}
