package system

import (
	"time"

	"github.com/AgentService/vibe-arena/internal/combat"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// Projectile is one in-flight projectile slot. Pierce counts the
// additional targets the projectile may pass through: 0 destroys it on
// the first hit.
type Projectile struct {
	Alive     bool
	Pos       vmath.Vec2
	Vel       vmath.Vec2
	Radius    float64
	Damage    float64
	Knockback float64
	Pierce    int
	Tags      []string

	hit []int // pool indices already damaged by this projectile
}

// ProjectileSystem owns a fixed-capacity projectile pool. Each live
// projectile integrates, radius-queries its own position, and submits
// at most one damage intent per tick for the first candidate that
// passes the exact overlap test and has not been hit before.
// Phase 1 (Attack).
type ProjectileSystem struct {
	state    *world.State
	pipeline *combat.DamagePipeline
	arena    bounds

	pool     []Projectile
	freeList []int
	queryBuf []int
}

type bounds struct {
	width, height, margin float64
}

func NewProjectileSystem(state *world.State, pipeline *combat.DamagePipeline, capacity int, arenaW, arenaH, margin float64) *ProjectileSystem {
	s := &ProjectileSystem{
		state:    state,
		pipeline: pipeline,
		arena:    bounds{width: arenaW, height: arenaH, margin: margin},
		pool:     make([]Projectile, capacity),
		freeList: make([]int, capacity),
		queryBuf: make([]int, 0, 32),
	}
	for i := 0; i < capacity; i++ {
		s.freeList[i] = capacity - 1 - i
	}
	return s
}

func (s *ProjectileSystem) Phase() coresys.Phase { return coresys.PhaseAttack }

// Fire claims a projectile slot. Returns false when the projectile
// pool is exhausted — a normal outcome, the shot is simply dropped.
func (s *ProjectileSystem) Fire(pos, vel vmath.Vec2, radius, damage, knockback float64, pierce int, tags []string) bool {
	if len(s.freeList) == 0 {
		return false
	}
	idx := s.freeList[len(s.freeList)-1]
	s.freeList = s.freeList[:len(s.freeList)-1]
	p := &s.pool[idx]
	p.Alive = true
	p.Pos = pos
	p.Vel = vel
	p.Radius = radius
	p.Damage = damage
	p.Knockback = knockback
	p.Pierce = pierce
	p.Tags = tags
	p.hit = p.hit[:0]
	return true
}

// LiveCount returns the number of in-flight projectiles.
func (s *ProjectileSystem) LiveCount() int {
	return len(s.pool) - len(s.freeList)
}

func (s *ProjectileSystem) Update(dt time.Duration) {
	step := dt.Seconds()
	for i := range s.pool {
		p := &s.pool[i]
		if !p.Alive {
			continue
		}
		p.Pos = p.Pos.Add(p.Vel.Scale(step))
		if s.outOfBounds(p.Pos) {
			s.destroy(i)
			continue
		}
		s.hitTest(i, p)
	}
}

func (s *ProjectileSystem) hitTest(slot int, p *Projectile) {
	s.queryBuf = s.queryBuf[:0]
	candidates := s.state.Grid.QueryRadius(p.Pos, p.Radius, s.queryBuf)
	for _, idx := range candidates {
		r, ok := s.state.Store.Get(idx)
		if !ok {
			continue
		}
		if vmath.DistSq(r.Pos, p.Pos) > p.Radius*p.Radius {
			continue // bucket false positive
		}
		if p.wasHit(idx) {
			continue
		}
		p.hit = append(p.hit, idx)
		s.pipeline.ApplyDamage(combat.DamageIntent{
			Source:     world.PlayerRef(),
			Target:     world.PooledRef(idx),
			BaseAmount: p.Damage,
			Tags:       p.Tags,
			Knockback:  p.Knockback,
			Origin:     p.Pos,
		})
		if p.Pierce == 0 {
			s.destroy(slot)
		} else {
			p.Pierce--
		}
		return // one intent per projectile per tick
	}
}

func (p *Projectile) wasHit(idx int) bool {
	for _, h := range p.hit {
		if h == idx {
			return true
		}
	}
	return false
}

func (s *ProjectileSystem) destroy(slot int) {
	p := &s.pool[slot]
	if !p.Alive {
		return
	}
	p.Alive = false
	s.freeList = append(s.freeList, slot)
}

func (s *ProjectileSystem) outOfBounds(pos vmath.Vec2) bool {
	m := s.arena.margin
	return pos.X < -m || pos.X > s.arena.width+m || pos.Y < -m || pos.Y > s.arena.height+m
}
