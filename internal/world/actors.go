package world

import "github.com/AgentService/vibe-arena/internal/vmath"

// ActorInfo holds combat state for a uniquely-instanced actor (a boss)
// that lives outside the pool. Actors take damage through the same
// pipeline as pooled entities; only the storage differs.
type ActorInfo struct {
	ID        string
	Name      string
	Alive     bool
	Pos       vmath.Vec2
	Health    float64
	MaxHealth float64
	Tags      map[string]struct{}
}

func (a *ActorInfo) HasTag(tag string) bool {
	_, ok := a.Tags[tag]
	return ok
}

// ActorRegistry indexes scene actors by opaque ID.
type ActorRegistry struct {
	actors map[string]*ActorInfo
}

func NewActorRegistry() *ActorRegistry {
	return &ActorRegistry{actors: make(map[string]*ActorInfo, 4)}
}

// Register adds an actor. Later registration with the same ID replaces
// the previous one.
func (r *ActorRegistry) Register(id, name string, maxHealth float64, pos vmath.Vec2, tags []string) *ActorInfo {
	a := &ActorInfo{
		ID:        id,
		Name:      name,
		Alive:     true,
		Pos:       pos,
		Health:    maxHealth,
		MaxHealth: maxHealth,
		Tags:      make(map[string]struct{}, len(tags)),
	}
	for _, tag := range tags {
		a.Tags[tag] = struct{}{}
	}
	r.actors[id] = a
	return a
}

// Get returns a live actor, or (nil, false) if unknown or dead.
func (r *ActorRegistry) Get(id string) (*ActorInfo, bool) {
	a, ok := r.actors[id]
	if !ok || !a.Alive {
		return nil, false
	}
	return a, true
}

// Remove deletes an actor from the registry.
func (r *ActorRegistry) Remove(id string) {
	delete(r.actors, id)
}
