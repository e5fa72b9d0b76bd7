package system

import (
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/AgentService/vibe-arena/internal/config"
	"github.com/AgentService/vibe-arena/internal/core/event"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/data"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// WavePhase is the spawn director's per-wave state.
type WavePhase int

const (
	WaveIdle     WavePhase = iota // waiting for the timer or an external trigger
	WaveSpawning                  // claiming pool slots until the budget is met
	WaveSettled                   // budget fully spawned
)

// Balance supplies the per-wave scaling knobs. Implementations must be
// pure functions of the wave index: templates are immutable and two
// runs with equal seeds must scale identically.
type Balance interface {
	SpawnBudget(wave int) int
	HealthScale(wave int) float64
	WeightScale(wave int, typeID string) float64
}

// DefaultBalance is the built-in scaling used when no script is
// loaded.
type DefaultBalance struct{}

func (DefaultBalance) SpawnBudget(wave int) int { return 8 + 4*(wave-1) }

func (DefaultBalance) HealthScale(wave int) float64 { return 1 + 0.15*float64(wave-1) }

func (DefaultBalance) WeightScale(int, string) float64 { return 1 }

// SpawnSystem is the wave director. State machine per wave:
// Idle → Spawning → Settled. During Spawning it repeatedly claims pool
// slots, choosing the template by weighted deterministic draw and the
// position on a ring around the player with a minimum-separation check
// against the spatial index. Pool exhaustion pauses the wave and
// resumes opportunistically as slots free — the wave is never dropped.
// Phase 2 (PostUpdate) — spawns become queryable next tick's attacks.
type SpawnSystem struct {
	state      *world.State
	bus        *event.Bus
	archetypes *data.ArchetypeTable
	waves      *data.WaveTable
	balance    Balance
	cfg        config.WavesConfig
	placement  *rand.Rand // named stream: spawn positions
	archStream *rand.Rand // named stream: weighted archetype choice
	log        *zap.Logger

	phase      WavePhase
	wave       int
	idleTimer  int
	spawnTimer int
	remaining  int
	spawned    int
	deferred   bool

	queryBuf []int
}

func NewSpawnSystem(
	state *world.State,
	bus *event.Bus,
	archetypes *data.ArchetypeTable,
	waves *data.WaveTable,
	balance Balance,
	cfg config.WavesConfig,
	placement, archStream *rand.Rand,
	log *zap.Logger,
) *SpawnSystem {
	return &SpawnSystem{
		state:      state,
		bus:        bus,
		archetypes: archetypes,
		waves:      waves,
		balance:    balance,
		cfg:        cfg,
		placement:  placement,
		archStream: archStream,
		log:        log,
		phase:      WaveIdle,
		idleTimer:  cfg.IdleDelayTicks,
		queryBuf:   make([]int, 0, 16),
	}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

// WavePhaseNow returns the director's current state.
func (s *SpawnSystem) WavePhaseNow() WavePhase { return s.phase }

// Wave returns the current wave index (0 before the first wave).
func (s *SpawnSystem) Wave() int { return s.wave }

// TriggerWave starts the next wave immediately when Idle.
func (s *SpawnSystem) TriggerWave() {
	if s.phase == WaveIdle {
		s.startWave()
	}
}

func (s *SpawnSystem) Update(_ time.Duration) {
	switch s.phase {
	case WaveIdle:
		s.idleTimer--
		if s.idleTimer <= 0 {
			s.startWave()
		}
	case WaveSpawning:
		s.spawnTimer--
		if s.spawnTimer <= 0 {
			s.spawnTimer = s.cfg.SpawnInterval
			s.trySpawnOne()
		}
	case WaveSettled:
		s.phase = WaveIdle
		s.idleTimer = s.cfg.IdleDelayTicks
	}
}

func (s *SpawnSystem) startWave() {
	s.wave++
	s.phase = WaveSpawning
	s.spawnTimer = 0
	s.spawned = 0
	s.deferred = false
	s.remaining = s.budget()
	event.Publish(s.bus, event.WaveStarted{Wave: s.wave, Budget: s.remaining})
	s.log.Info("wave started", zap.Int("wave", s.wave), zap.Int("budget", s.remaining))
}

func (s *SpawnSystem) budget() int {
	if entry := s.waves.Get(s.wave); entry != nil {
		return entry.Budget
	}
	return s.balance.SpawnBudget(s.wave)
}

func (s *SpawnSystem) trySpawnOne() {
	template := s.drawArchetype()
	if template == nil {
		// Every effective weight is zero this wave; nothing can ever
		// spawn, so the wave settles with whatever it got.
		s.log.Warn("no spawnable archetype, settling wave",
			zap.Int("wave", s.wave), zap.Int("spawned", s.spawned))
		s.settle()
		return
	}
	pos := s.placePosition()

	idx, ok := s.state.Spawn(template, pos, s.balance.HealthScale(s.wave))
	if !ok {
		// Pool exhausted: pause, retry as slots free. Expected under
		// load, never a crash.
		if !s.deferred {
			s.deferred = true
			event.Publish(s.bus, event.SpawnDeferred{Wave: s.wave, Remaining: s.remaining})
			s.log.Debug("spawn deferred, pool exhausted",
				zap.Int("wave", s.wave), zap.Int("remaining", s.remaining))
		}
		return
	}
	s.deferred = false
	s.spawned++
	s.remaining--
	_ = idx

	if s.remaining <= 0 {
		s.settle()
	}
}

func (s *SpawnSystem) settle() {
	s.phase = WaveSettled
	event.Publish(s.bus, event.WaveSettled{Wave: s.wave, Spawned: s.spawned})
	s.log.Info("wave settled", zap.Int("wave", s.wave), zap.Int("spawned", s.spawned))
}

// drawArchetype picks a template by weighted draw over the sorted
// TypeID list. Iteration order is fixed, so equal seeds replay to
// identical choices.
func (s *SpawnSystem) drawArchetype() *data.Archetype {
	entry := s.waves.Get(s.wave)
	total := 0.0
	for _, id := range s.archetypes.TypeIDs() {
		total += s.effectiveWeight(entry, id)
	}
	if total <= 0 {
		return nil
	}
	roll := s.archStream.Float64() * total
	for _, id := range s.archetypes.TypeIDs() {
		roll -= s.effectiveWeight(entry, id)
		if roll < 0 {
			return s.archetypes.Get(id)
		}
	}
	// Float round-off: fall back to the last non-zero-weight template.
	ids := s.archetypes.TypeIDs()
	for i := len(ids) - 1; i >= 0; i-- {
		if s.effectiveWeight(entry, ids[i]) > 0 {
			return s.archetypes.Get(ids[i])
		}
	}
	return nil
}

func (s *SpawnSystem) effectiveWeight(entry *data.WaveEntry, typeID string) float64 {
	w := s.archetypes.Get(typeID).SpawnWeight
	if entry != nil {
		if override, ok := entry.Weights[typeID]; ok {
			w = override
		}
	}
	return w * s.balance.WeightScale(s.wave, typeID)
}

// placePosition samples the spawn ring around the player, rejecting
// spots within MinSeparation of a live entity. After PlaceAttempts
// rejections the last sample is accepted anyway — a crowded ring
// degrades placement quality, not correctness.
func (s *SpawnSystem) placePosition() vmath.Vec2 {
	center := s.state.Player.Pos
	var pos vmath.Vec2
	for attempt := 0; attempt < s.cfg.PlaceAttempts; attempt++ {
		angle := s.placement.Float64() * 2 * math.Pi
		pos = center.Add(vmath.V(math.Cos(angle), math.Sin(angle)).Scale(s.cfg.RingRadius))
		if s.separated(pos) {
			return pos
		}
	}
	return pos
}

func (s *SpawnSystem) separated(pos vmath.Vec2) bool {
	s.queryBuf = s.queryBuf[:0]
	minSq := s.cfg.MinSeparation * s.cfg.MinSeparation
	for _, idx := range s.state.Grid.QueryRadius(pos, s.cfg.MinSeparation, s.queryBuf) {
		if r, ok := s.state.Store.Get(idx); ok && vmath.DistSq(r.Pos, pos) < minSq {
			return false
		}
	}
	return true
}
