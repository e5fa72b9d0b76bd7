package world

import (
	"github.com/AgentService/vibe-arena/internal/data"
	"github.com/AgentService/vibe-arena/internal/vmath"
)

// PlayerInfo holds the player's combat state. The player lives outside
// the pool but is damageable through the same pipeline.
type PlayerInfo struct {
	Pos       vmath.Vec2
	Health    float64
	MaxHealth float64
	Alive     bool
}

// DespawnNotice records an alive→dead transition, drained by the
// cleanup system which publishes the despawn event.
type DespawnNotice struct {
	Index  int
	TypeID string
	Pos    vmath.Vec2
	Killed bool // true when the damage pipeline caused it, false for forced despawn
}

// State aggregates everything the simulation mutates: the enemy pool,
// its spatial index, scene actors, and the player. The store and grid
// are kept in lockstep here — Spawn inserts into the grid, Kill and
// ForceDespawn remove — so no caller can leave a stale bucket behind.
type State struct {
	Store  *EnemyStore
	Grid   *SpatialGrid
	Actors *ActorRegistry
	Player PlayerInfo

	pending []DespawnNotice
}

func NewState(capacity int, cellSize float64) *State {
	return &State{
		Store:   NewEnemyStore(capacity),
		Grid:    NewSpatialGrid(cellSize),
		Actors:  NewActorRegistry(),
		Player:  PlayerInfo{Health: 100, MaxHealth: 100, Alive: true},
		pending: make([]DespawnNotice, 0, 32),
	}
}

// Spawn claims a pool slot and indexes it. Atomic: either the entity
// exists in both store and grid, or neither.
func (s *State) Spawn(a *data.Archetype, pos vmath.Vec2, healthScale float64) (int, bool) {
	idx, ok := s.Store.Spawn(a, pos, healthScale)
	if !ok {
		return -1, false
	}
	s.Grid.Insert(idx, pos)
	return idx, true
}

// Kill transitions a pooled entity to dead as part of damage
// processing. The store reports the entity dead and the grid no longer
// returns it before the damage result is observable. Idempotent.
func (s *State) Kill(index int) {
	r, ok := s.Store.Get(index)
	if !ok {
		return
	}
	s.pending = append(s.pending, DespawnNotice{Index: index, TypeID: r.TypeID, Pos: r.Pos, Killed: true})
	s.Grid.Remove(index, r.Pos)
	s.Store.Despawn(index)
}

// ForceDespawn removes an entity outside the damage path (out of
// bounds, wave reset). Idempotent.
func (s *State) ForceDespawn(index int) {
	r, ok := s.Store.Get(index)
	if !ok {
		return
	}
	s.pending = append(s.pending, DespawnNotice{Index: index, TypeID: r.TypeID, Pos: r.Pos})
	s.Grid.Remove(index, r.Pos)
	s.Store.Despawn(index)
}

// DrainDespawns returns this tick's despawn notices and resets the
// queue. The returned slice is valid until the next call.
func (s *State) DrainDespawns() []DespawnNotice {
	out := s.pending
	s.pending = s.pending[:0]
	return out
}

// PositionOf resolves a live pooled entity's position for grid
// queries.
func (s *State) PositionOf(index int) (vmath.Vec2, bool) {
	r, ok := s.Store.Get(index)
	if !ok {
		return vmath.Vec2{}, false
	}
	return r.Pos, true
}
