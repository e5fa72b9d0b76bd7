package combat

import (
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// DamageIntent is a request to apply damage from a source to a target.
// It is a value: built by a resolver, consumed by the pipeline, owned
// by no long-lived structure.
type DamageIntent struct {
	Source     world.EntityRef
	Target     world.EntityRef
	BaseAmount float64
	Tags       []string   // damage-type tags, modifier keys
	Knockback  float64    // knockback distance for on-hit feedback
	Origin     vmath.Vec2 // where the hit came from, for knockback direction
}

// HasTag reports whether the intent carries the given tag.
func (in *DamageIntent) HasTag(tag string) bool {
	for _, t := range in.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DamageResult is the authoritative outcome of processing an intent.
type DamageResult struct {
	Target         world.EntityRef
	AmountApplied  float64
	IsCritical     bool
	ResultingAlive bool
}
