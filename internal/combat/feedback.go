package combat

import (
	"github.com/AgentService/vibe-arena/internal/core/event"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// flashDuration is how many ticks a hit entity stays flashed.
const flashDuration = 4

// FeedbackBuffer derives on-hit presentation state (knockback offset,
// hit flash) from DamageTaken events. It is a read-only consumer of
// the pipeline: the authoritative position and health never depend on
// it, so visual feedback can never block or corrupt damage processing.
type FeedbackBuffer struct {
	state *world.State

	flash   []int        // remaining flash ticks, indexed by pool slot
	offsets []vmath.Vec2 // presentation knockback offsets, decayed per tick
}

func NewFeedbackBuffer(state *world.State, bus *event.Bus) *FeedbackBuffer {
	f := &FeedbackBuffer{
		state:   state,
		flash:   make([]int, state.Store.Capacity()),
		offsets: make([]vmath.Vec2, state.Store.Capacity()),
	}
	event.Subscribe(bus, f.onDamageTaken)
	event.Subscribe(bus, f.onDespawn)
	return f
}

func (f *FeedbackBuffer) onDamageTaken(ev event.DamageTaken) {
	if ev.Target.Kind != world.RefPooled {
		return
	}
	idx := ev.Target.Index
	r, ok := f.state.Store.Get(idx)
	if !ok {
		// Lethal hit: the record is already dead, nothing to flash.
		return
	}
	f.flash[idx] = flashDuration
	if ev.Knockback > 0 {
		dir := r.Pos.Sub(ev.Origin).Normalize()
		f.offsets[idx] = f.offsets[idx].Add(dir.Scale(ev.Knockback))
	}
}

func (f *FeedbackBuffer) onDespawn(ev event.EntityDespawned) {
	f.flash[ev.Index] = 0
	f.offsets[ev.Index] = vmath.Vec2{}
}

// Tick decays flash timers and knockback offsets. Called once per
// simulation tick by the snapshot system.
func (f *FeedbackBuffer) Tick() {
	for i := range f.flash {
		if f.flash[i] > 0 {
			f.flash[i]--
		}
		f.offsets[i] = f.offsets[i].Scale(0.7)
	}
}

// Flashing reports whether the slot is currently hit-flashed.
func (f *FeedbackBuffer) Flashing(index int) bool {
	return f.flash[index] > 0
}

// Offset returns the slot's presentation knockback offset.
func (f *FeedbackBuffer) Offset(index int) vmath.Vec2 {
	return f.offsets[index]
}
