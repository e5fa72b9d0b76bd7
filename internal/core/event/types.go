package event

import (
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// Damage lifecycle events. For any single damage application that
// mutates health, subscribers observe exactly one of each, in order:
// DamageRequested → DamageApplied → DamageTaken, synchronously within
// the ApplyDamage call. A hit on an already-dead target emits nothing.

// DamageRequested is informational, published before mutation.
type DamageRequested struct {
	Source     world.EntityRef
	Target     world.EntityRef
	BaseAmount float64
}

// DamageApplied carries the authoritative result, published after
// mutation. Visual-effects systems typically subscribe only to this.
type DamageApplied struct {
	Target         world.EntityRef
	AmountApplied  float64
	IsCritical     bool
	ResultingAlive bool
}

// DamageTaken is target-facing, published after mutation; on-hit
// reactions (knockback, flash) consume it together with the intent
// origin.
type DamageTaken struct {
	Target        world.EntityRef
	AmountApplied float64
	Origin        vmath.Vec2
	Knockback     float64
}

// EntityDespawned fires once for every alive→dead transition of a
// pooled entity, killed or force-despawned.
type EntityDespawned struct {
	Index  int
	TypeID string
	Pos    vmath.Vec2
	Killed bool
}

// WaveStarted fires on the Idle→Spawning transition.
type WaveStarted struct {
	Wave   int
	Budget int
}

// WaveSettled fires when a wave has spawned its full budget.
type WaveSettled struct {
	Wave    int
	Spawned int
}

// SpawnDeferred fires when the pool is exhausted mid-wave. Spawning
// resumes opportunistically as slots free; the wave is never dropped.
type SpawnDeferred struct {
	Wave      int
	Remaining int
}
