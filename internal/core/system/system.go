package system

import "time"

// Phase defines execution ordering within a single tick. The order is
// a correctness contract: attack resolvers must see this tick's
// movement results, and despawns from this tick's damage must be gone
// from the grid before next tick's queries.
type Phase int

const (
	PhaseMovement   Phase = iota // 0: integrate velocities, update grid buckets
	PhaseAttack                  // 1: resolvers query the grid and submit damage intents
	PhasePostUpdate              // 2: wave spawning
	PhaseCleanup                 // 3: flush despawn queue
	PhaseSnapshot                // 4: publish render snapshot
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
