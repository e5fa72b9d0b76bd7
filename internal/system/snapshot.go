package system

import (
	"sync/atomic"
	"time"

	"github.com/AgentService/vibe-arena/internal/combat"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/render"
	"github.com/AgentService/vibe-arena/internal/world"
)

// SnapshotSystem publishes the end-of-tick render view. Each tick it
// builds a fresh snapshot and swaps an atomic pointer; published
// snapshots are never written again, so a renderer may hold one across
// any number of ticks without synchronizing with the simulation.
// Phase 4 (Snapshot) — last in the tick.
type SnapshotSystem struct {
	state    *world.State
	feedback *combat.FeedbackBuffer

	tick      uint64
	published atomic.Pointer[render.Snapshot]
}

func NewSnapshotSystem(state *world.State, feedback *combat.FeedbackBuffer) *SnapshotSystem {
	s := &SnapshotSystem{state: state, feedback: feedback}
	s.published.Store(&render.Snapshot{})
	return s
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhaseSnapshot }

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.feedback.Tick()
	s.tick++

	snap := &render.Snapshot{
		Tick:     s.tick,
		Entities: make([]render.SnapshotEntity, 0, s.state.Store.AliveCount()),
	}
	s.state.Store.EachAlive(func(idx int, r *world.EnemyRecord) {
		snap.Entities = append(snap.Entities, render.SnapshotEntity{
			Pos:      r.Pos.Add(s.feedback.Offset(idx)),
			Size:     r.Size,
			TypeID:   r.TypeID,
			Flashing: s.feedback.Flashing(idx),
		})
	})

	s.published.Store(snap)
}

// Snapshot returns the most recently published render view. The
// returned snapshot is immutable; it stays valid however long the
// caller holds it.
func (s *SnapshotSystem) Snapshot() *render.Snapshot {
	return s.published.Load()
}
