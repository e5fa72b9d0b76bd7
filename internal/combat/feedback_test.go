package combat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgentService/vibe-arena/internal/core/event"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

func TestFeedbackFlashAndKnockback(t *testing.T) {
	p, state, bus := newTestPipeline(t, 4)
	fb := NewFeedbackBuffer(state, bus)
	idx := spawnOne(t, state, 100) // spawns at (100,100)

	p.ApplyDamage(DamageIntent{
		Source:     world.PlayerRef(),
		Target:     world.PooledRef(idx),
		BaseAmount: 5,
		Knockback:  30,
		Origin:     vmath.V(70, 100), // hit from the left
	})

	assert.True(t, fb.Flashing(idx))
	off := fb.Offset(idx)
	assert.InDelta(t, 30, off.X, 1e-9, "knockback points away from the origin")
	assert.InDelta(t, 0, off.Y, 1e-9)

	// Authoritative position is untouched: feedback is presentation only.
	r, ok := state.Store.Get(idx)
	require.True(t, ok)
	assert.Equal(t, vmath.V(100, 100), r.Pos)
}

func TestFeedbackDecays(t *testing.T) {
	p, state, bus := newTestPipeline(t, 4)
	fb := NewFeedbackBuffer(state, bus)
	idx := spawnOne(t, state, 100)

	p.ApplyDamage(DamageIntent{
		Target: world.PooledRef(idx), BaseAmount: 5,
		Knockback: 10, Origin: vmath.V(0, 100),
	})
	require.True(t, fb.Flashing(idx))

	for i := 0; i < flashDuration; i++ {
		fb.Tick()
	}
	assert.False(t, fb.Flashing(idx))
	assert.Less(t, fb.Offset(idx).Len(), 10.0, "offset shrinks every tick")
}

func TestFeedbackClearedOnDespawn(t *testing.T) {
	p, state, bus := newTestPipeline(t, 4)
	fb := NewFeedbackBuffer(state, bus)
	idx := spawnOne(t, state, 100)

	p.ApplyDamage(DamageIntent{
		Target: world.PooledRef(idx), BaseAmount: 5,
		Knockback: 10, Origin: vmath.V(0, 100),
	})
	require.True(t, fb.Flashing(idx))

	state.ForceDespawn(idx)
	// Despawn notices are published at cleanup; simulate it.
	for _, n := range state.DrainDespawns() {
		event.Publish(bus, event.EntityDespawned{Index: n.Index, TypeID: n.TypeID, Pos: n.Pos, Killed: n.Killed})
	}

	assert.False(t, fb.Flashing(idx))
	assert.Zero(t, fb.Offset(idx).Len())
}

func TestLethalHitDoesNotFlash(t *testing.T) {
	p, state, bus := newTestPipeline(t, 4)
	fb := NewFeedbackBuffer(state, bus)
	idx := spawnOne(t, state, 5)

	p.ApplyDamage(DamageIntent{
		Target: world.PooledRef(idx), BaseAmount: 50,
		Knockback: 10, Origin: vmath.V(0, 100),
	})

	assert.False(t, fb.Flashing(idx), "dead entities are not flashed")
}
