package combat

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/AgentService/vibe-arena/internal/core/event"
	"github.com/AgentService/vibe-arena/internal/world"
)

// DamagePipeline is the single legal path to mutate combat health, for
// pooled entities, the player, and uniquely-instanced actors alike. It
// dispatches on the target's ref kind internally so no caller ever
// needs to know which storage a target lives in — a second damage path
// is impossible by construction.
type DamagePipeline struct {
	state *world.State
	bus   *event.Bus
	crit  *rand.Rand // named crit stream, independent of spawn randomness
	log   *zap.Logger

	dispatching bool
}

func NewDamagePipeline(state *world.State, bus *event.Bus, crit *rand.Rand, log *zap.Logger) *DamagePipeline {
	return &DamagePipeline{state: state, bus: bus, crit: crit, log: log}
}

// ApplyDamage processes one intent and returns the authoritative
// result.
//
// A target that is already dead (a normal race when several sources
// hit the same entity in one tick) yields AmountApplied 0,
// ResultingAlive false, and emits no events. When the hit is lethal,
// the target is dead in the store before this returns.
//
// Event subscribers must not call back into the pipeline; re-entry is
// a programmer error and panics.
func (p *DamagePipeline) ApplyDamage(intent DamageIntent) DamageResult {
	if p.dispatching {
		panic("combat: ApplyDamage re-entered from an event subscriber")
	}

	targetTag, alive := p.resolve(intent.Target)
	if !alive {
		// Expected in multi-source-damage frames; not an error.
		p.log.Debug("damage intent on dead target",
			zap.String("target", intent.Target.String()),
			zap.String("source", intent.Source.String()))
		return DamageResult{Target: intent.Target, ResultingAlive: false}
	}

	p.dispatching = true
	defer func() { p.dispatching = false }()

	event.Publish(p.bus, event.DamageRequested{
		Source:     intent.Source,
		Target:     intent.Target,
		BaseAmount: intent.BaseAmount,
	})

	isCrit := intent.HasTag(TagCanCrit) && p.crit.Float64() < CritChance
	amount := EffectiveDamage(intent.BaseAmount, intent.Tags, targetTag, isCrit)

	applied, resultingAlive := p.mutate(intent.Target, amount)

	result := DamageResult{
		Target:         intent.Target,
		AmountApplied:  applied,
		IsCritical:     isCrit,
		ResultingAlive: resultingAlive,
	}

	event.Publish(p.bus, event.DamageApplied{
		Target:         result.Target,
		AmountApplied:  result.AmountApplied,
		IsCritical:     result.IsCritical,
		ResultingAlive: result.ResultingAlive,
	})
	event.Publish(p.bus, event.DamageTaken{
		Target:        result.Target,
		AmountApplied: result.AmountApplied,
		Origin:        intent.Origin,
		Knockback:     intent.Knockback,
	})
	return result
}

// resolve looks the target up in its storage. Returns the target's
// tag predicate and whether it is alive.
func (p *DamagePipeline) resolve(ref world.EntityRef) (func(string) bool, bool) {
	switch ref.Kind {
	case world.RefPooled:
		r, ok := p.state.Store.Get(ref.Index)
		if !ok {
			return nil, false
		}
		return r.HasTag, true
	case world.RefActor:
		a, ok := p.state.Actors.Get(ref.ActorID)
		if !ok {
			return nil, false
		}
		return a.HasTag, true
	default:
		if !p.state.Player.Alive {
			return nil, false
		}
		return func(string) bool { return false }, true
	}
}

// mutate subtracts health, clamps at zero, and transitions the target
// to dead on a lethal hit. Returns the amount actually applied and
// whether the target survived. The target is looked up again here: a
// DamageRequested subscriber may have despawned it since resolve, in
// which case nothing is applied.
func (p *DamagePipeline) mutate(ref world.EntityRef, amount float64) (float64, bool) {
	switch ref.Kind {
	case world.RefPooled:
		r, ok := p.state.Store.Get(ref.Index)
		if !ok {
			return 0, false
		}
		r.Health -= amount
		if r.Health <= 0 {
			r.Health = 0
			p.state.Kill(ref.Index)
			return amount, false
		}
		return amount, true
	case world.RefActor:
		a, ok := p.state.Actors.Get(ref.ActorID)
		if !ok {
			return 0, false
		}
		a.Health -= amount
		if a.Health <= 0 {
			a.Health = 0
			a.Alive = false
			return amount, false
		}
		return amount, true
	default:
		pl := &p.state.Player
		if !pl.Alive {
			return 0, false
		}
		pl.Health -= amount
		if pl.Health <= 0 {
			pl.Health = 0
			pl.Alive = false
			return amount, false
		}
		return amount, true
	}
}
