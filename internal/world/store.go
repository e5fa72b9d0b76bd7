package world

import (
	"github.com/AgentService/vibe-arena/internal/data"
	"github.com/AgentService/vibe-arena/internal/vmath"
)

// EnemyRecord holds all mutable combat state for one pooled enemy.
// Owned exclusively by the EnemyStore; everything else refers to it by
// slot index. When Alive is false the payload is undefined except that
// the slot is eligible for reuse.
type EnemyRecord struct {
	Alive     bool
	Pos       vmath.Vec2
	Vel       vmath.Vec2
	Health    float64
	MaxHealth float64
	TypeID    string
	Size      vmath.Vec2
	Speed     float64
	Damage    float64
	Knockback float64
	Tags      map[string]struct{}
}

// HasTag reports whether the record carries the given tag.
func (r *EnemyRecord) HasTag(tag string) bool {
	_, ok := r.Tags[tag]
	return ok
}

// EnemyStore is a fixed-capacity slot pool for enemy records. Free
// slots are kept on a stack so Spawn and Despawn are O(1) with no
// shifting and no reallocation. Capacity is configuration, chosen to
// bound worst-case per-frame cost; Spawn past capacity is a normal,
// expected outcome, not an error.
//
// Accessed only from the simulation goroutine — no locks.
type EnemyStore struct {
	records  []EnemyRecord
	freeList []int
	alive    int
}

func NewEnemyStore(capacity int) *EnemyStore {
	s := &EnemyStore{
		records:  make([]EnemyRecord, capacity),
		freeList: make([]int, capacity),
	}
	// Fill the free stack so low indices pop first.
	for i := 0; i < capacity; i++ {
		s.freeList[i] = capacity - 1 - i
	}
	for i := range s.records {
		s.records[i].Tags = make(map[string]struct{}, 4)
	}
	return s
}

func (s *EnemyStore) Capacity() int   { return len(s.records) }
func (s *EnemyStore) AliveCount() int { return s.alive }

// Spawn claims a free slot and initializes it from the archetype.
// healthScale is the wave scaling factor; the template itself is never
// mutated. Returns (index, true) on success, (-1, false) when the pool
// is exhausted. The call is atomic: on failure nothing is mutated.
func (s *EnemyStore) Spawn(a *data.Archetype, pos vmath.Vec2, healthScale float64) (int, bool) {
	if len(s.freeList) == 0 {
		return -1, false
	}
	idx := s.freeList[len(s.freeList)-1]
	s.freeList = s.freeList[:len(s.freeList)-1]

	r := &s.records[idx]
	r.Alive = true
	r.Pos = pos
	r.Vel = vmath.Vec2{}
	r.MaxHealth = a.BaseHealth * healthScale
	r.Health = r.MaxHealth
	r.TypeID = a.TypeID
	r.Size = vmath.V(a.SizeW, a.SizeH)
	r.Speed = a.BaseSpeed
	r.Damage = a.Damage
	r.Knockback = a.Knockback
	for tag := range r.Tags {
		delete(r.Tags, tag)
	}
	for _, tag := range a.Tags {
		r.Tags[tag] = struct{}{}
	}
	s.alive++
	return idx, true
}

// Despawn marks the slot dead and frees it for reuse. Idempotent:
// despawning an already-dead index is a no-op.
func (s *EnemyStore) Despawn(index int) {
	if index < 0 || index >= len(s.records) {
		return
	}
	r := &s.records[index]
	if !r.Alive {
		return
	}
	r.Alive = false
	for tag := range r.Tags {
		delete(r.Tags, tag)
	}
	s.freeList = append(s.freeList, index)
	s.alive--
}

// Get returns the record at index, or (nil, false) if the index is out
// of range or the record is dead. This is the single check point that
// prevents mutation of dead entities: every external reference must go
// through it.
func (s *EnemyStore) Get(index int) (*EnemyRecord, bool) {
	if index < 0 || index >= len(s.records) {
		return nil, false
	}
	r := &s.records[index]
	if !r.Alive {
		return nil, false
	}
	return r, true
}

// EachAlive calls fn for every alive record in ascending index order.
// Resolver iteration depends on the stable order for reproducibility.
func (s *EnemyStore) EachAlive(fn func(index int, r *EnemyRecord)) {
	for i := range s.records {
		if s.records[i].Alive {
			fn(i, &s.records[i])
		}
	}
}
