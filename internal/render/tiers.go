package render

import "github.com/AgentService/vibe-arena/internal/vmath"

// Transform is the per-instance placement the renderer consumes.
type Transform struct {
	Pos  vmath.Vec2
	Size vmath.Vec2
}

// Color is a linear RGBA instance color.
type Color struct {
	R, G, B, A float32
}

var (
	baseColor  = Color{R: 0.8, G: 0.2, B: 0.2, A: 1}
	flashColor = Color{R: 1, G: 1, B: 1, A: 1}
)

// TierBatch holds the parallel instance arrays for one size tier.
type TierBatch struct {
	Transforms []Transform
	Colors     []Color
}

// TierClassifier partitions a snapshot into size tiers for instanced
// rendering. Tier of an entity = number of thresholds below
// max(size.x, size.y); len(thresholds)+1 tiers total. Output buffers
// are reused across frames — rewritten from index 0 and truncated,
// never reallocated once warm.
type TierClassifier struct {
	thresholds []float64
	batches    []TierBatch
}

func NewTierClassifier(thresholds []float64) *TierClassifier {
	return &TierClassifier{
		thresholds: thresholds,
		batches:    make([]TierBatch, len(thresholds)+1),
	}
}

// TierOf returns the tier index for a footprint size.
func (c *TierClassifier) TierOf(size vmath.Vec2) int {
	m := size.X
	if size.Y > m {
		m = size.Y
	}
	for i, t := range c.thresholds {
		if m <= t {
			return i
		}
	}
	return len(c.thresholds)
}

// Classify partitions the snapshot into per-tier instance batches.
// The returned slice and its buffers are owned by the classifier and
// valid until the next Classify call.
func (c *TierClassifier) Classify(snap *Snapshot) []TierBatch {
	for i := range c.batches {
		c.batches[i].Transforms = c.batches[i].Transforms[:0]
		c.batches[i].Colors = c.batches[i].Colors[:0]
	}
	for i := range snap.Entities {
		e := &snap.Entities[i]
		tier := c.TierOf(e.Size)
		b := &c.batches[tier]
		b.Transforms = append(b.Transforms, Transform{Pos: e.Pos, Size: e.Size})
		color := baseColor
		if e.Flashing {
			color = flashColor
		}
		b.Colors = append(b.Colors, color)
	}
	return c.batches
}
