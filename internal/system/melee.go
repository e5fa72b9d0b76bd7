package system

import (
	"time"

	"github.com/AgentService/vibe-arena/internal/combat"
	coresys "github.com/AgentService/vibe-arena/internal/core/system"
	"github.com/AgentService/vibe-arena/internal/vmath"
	"github.com/AgentService/vibe-arena/internal/world"
)

// SwingCommand is one staged melee swing. Range, half-angle and
// damage arrive as plain numbers already scaled by the upgrade
// collaborator; this system does not know how they were computed.
type SwingCommand struct {
	Direction vmath.Vec2
	Range     float64
	HalfAngle float64 // radians
	Damage    float64
	Knockback float64
	Tags      []string
}

// MeleeSystem translates staged swings into damage intents. It holds
// no entity state and mutates no health: a cone query produces
// candidates in ascending index order (so identical inputs and seeds
// replay to identical result sequences), and every candidate goes
// through the pipeline. Phase 1 (Attack).
type MeleeSystem struct {
	state    *world.State
	pipeline *combat.DamagePipeline

	staged   []SwingCommand
	queryBuf []int
}

func NewMeleeSystem(state *world.State, pipeline *combat.DamagePipeline) *MeleeSystem {
	return &MeleeSystem{
		state:    state,
		pipeline: pipeline,
		queryBuf: make([]int, 0, 64),
	}
}

func (s *MeleeSystem) Phase() coresys.Phase { return coresys.PhaseAttack }

// Stage queues a swing for resolution on the next Update.
func (s *MeleeSystem) Stage(cmd SwingCommand) {
	s.staged = append(s.staged, cmd)
}

func (s *MeleeSystem) Update(_ time.Duration) {
	for i := range s.staged {
		s.resolve(&s.staged[i])
	}
	s.staged = s.staged[:0]
}

func (s *MeleeSystem) resolve(cmd *SwingCommand) {
	origin := s.state.Player.Pos
	s.queryBuf = s.queryBuf[:0]
	hits := s.state.Grid.QueryCone(origin, cmd.Direction, cmd.Range, cmd.HalfAngle, s.state.PositionOf, s.queryBuf)
	for _, idx := range hits {
		s.pipeline.ApplyDamage(combat.DamageIntent{
			Source:     world.PlayerRef(),
			Target:     world.PooledRef(idx),
			BaseAmount: cmd.Damage,
			Tags:       cmd.Tags,
			Knockback:  cmd.Knockback,
			Origin:     origin,
		})
	}
}
