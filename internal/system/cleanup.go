package system

import (
	"time"

	"github.com/AgentService/vibe-arena/internal/core/event"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/world"
)

// CleanupSystem drains this tick's alive→dead transitions and
// publishes the despawn notifications. Runs after damage so every
// death from this tick is announced before next tick's queries.
// Phase 3 (Cleanup).
type CleanupSystem struct {
	state *world.State
	bus   *event.Bus
}

func NewCleanupSystem(state *world.State, bus *event.Bus) *CleanupSystem {
	return &CleanupSystem{state: state, bus: bus}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	for _, notice := range s.state.DrainDespawns() {
		event.Publish(s.bus, event.EntityDespawned{
			Index:  notice.Index,
			TypeID: notice.TypeID,
			Pos:    notice.Pos,
			Killed: notice.Killed,
		})
	}
}
