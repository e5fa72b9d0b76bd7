package sim

import (
	"math/rand"

	"github.com/AgentService/vibe-arena/internal/config"
)

// Streams holds the named, independently seeded RNG streams. Replaying
// the same seeds reproduces identical outcomes per stream regardless
// of how much randomness the other streams consume.
type Streams struct {
	Placement *rand.Rand // spawn ring positions
	Archetype *rand.Rand // weighted template choice
	Crit      *rand.Rand // critical hit rolls
}

func NewStreams(cfg config.SimConfig) *Streams {
	return &Streams{
		Placement: rand.New(rand.NewSource(cfg.PlacementSeed)),
		Archetype: rand.New(rand.NewSource(cfg.ArchetypeSeed)),
		Crit:      rand.New(rand.NewSource(cfg.CritSeed)),
	}
}
