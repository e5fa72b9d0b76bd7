package world

import "fmt"

// RefKind tags which storage a combat target lives in.
type RefKind uint8

const (
	RefPlayer RefKind = iota // the single player character
	RefPooled                // pooled enemy, addressed by slot index
	RefActor                 // uniquely-instanced actor (boss), addressed by ID
)

// EntityRef is a tagged reference to any damageable entity. Damage
// works identically whether the target lives in the pool or is a
// uniquely-instanced actor; the pipeline dispatches on Kind so callers
// never need to know.
type EntityRef struct {
	Kind    RefKind
	Index   int    // valid when Kind == RefPooled
	ActorID string // valid when Kind == RefActor
}

func PlayerRef() EntityRef          { return EntityRef{Kind: RefPlayer} }
func PooledRef(index int) EntityRef { return EntityRef{Kind: RefPooled, Index: index} }
func ActorRef(id string) EntityRef  { return EntityRef{Kind: RefActor, ActorID: id} }

func (r EntityRef) String() string {
	switch r.Kind {
	case RefPlayer:
		return "player"
	case RefPooled:
		return fmt.Sprintf("pooled:%d", r.Index)
	default:
		return "actor:" + r.ActorID
	}
}
