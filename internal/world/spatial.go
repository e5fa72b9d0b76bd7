package world

import (
	"math"
	"sort"

	"github.com/AgentService/vibe-arena/internal/vmath"
)

type cellKey struct {
	cx int32
	cy int32
}

// SpatialGrid is a uniform cell grid over entity positions. It trades
// false positives for O(1) bucket lookup: queries return a
// conservative superset gathered from the buckets overlapping the
// query shape instead of scanning the whole store. Cell size is
// configured near the typical query radius so both the false-positive
// rate and the per-query bucket count stay bounded.
//
// Bucket membership must match floor(pos/cellSize) after any position
// mutation within the same tick; the movement system calls Move
// exactly once per moved entity.
type SpatialGrid struct {
	cellSize float64
	cells    map[cellKey][]int
}

func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]int, 64),
	}
}

func (g *SpatialGrid) keyFor(pos vmath.Vec2) cellKey {
	return cellKey{
		cx: int32(math.Floor(pos.X / g.cellSize)),
		cy: int32(math.Floor(pos.Y / g.cellSize)),
	}
}

// Insert places an entity index into the bucket for pos.
func (g *SpatialGrid) Insert(index int, pos vmath.Vec2) {
	k := g.keyFor(pos)
	g.cells[k] = append(g.cells[k], index)
}

// Remove takes an entity out of the bucket for pos. Swap-remove keeps
// buckets dense; query output is sorted afterwards anyway.
func (g *SpatialGrid) Remove(index int, pos vmath.Vec2) {
	k := g.keyFor(pos)
	cell := g.cells[k]
	for i, e := range cell {
		if e == index {
			cell[i] = cell[len(cell)-1]
			g.cells[k] = cell[:len(cell)-1]
			if len(g.cells[k]) == 0 {
				delete(g.cells, k)
			}
			return
		}
	}
}

// Move updates an entity's bucket when its position changes. No-op
// when old and new positions land in the same cell.
func (g *SpatialGrid) Move(index int, oldPos, newPos vmath.Vec2) {
	oldK := g.keyFor(oldPos)
	newK := g.keyFor(newPos)
	if oldK == newK {
		return
	}
	g.Remove(index, oldPos)
	g.Insert(index, newPos)
}

// QueryRadius appends to out the indices of all entities whose bucket
// overlaps the circle (point, radius). This is a conservative
// superset: callers must still do the exact distance check. Output is
// ascending-index sorted so resolver iteration is reproducible. Reuse
// out across calls to avoid allocation.
func (g *SpatialGrid) QueryRadius(point vmath.Vec2, radius float64, out []int) []int {
	cx0 := int64(math.Floor((point.X - radius) / g.cellSize))
	cx1 := int64(math.Floor((point.X + radius) / g.cellSize))
	cy0 := int64(math.Floor((point.Y - radius) / g.cellSize))
	cy1 := int64(math.Floor((point.Y + radius) / g.cellSize))

	// For huge radii walking the box would dominate; walk the occupied
	// cells instead and filter by the box.
	occupied := int64(len(g.cells))
	if cx1-cx0+1 > occupied || cy1-cy0+1 > occupied || (cx1-cx0+1)*(cy1-cy0+1) > occupied {
		for k, cell := range g.cells {
			if int64(k.cx) >= cx0 && int64(k.cx) <= cx1 && int64(k.cy) >= cy0 && int64(k.cy) <= cy1 {
				out = append(out, cell...)
			}
		}
	} else {
		for cx := cx0; cx <= cx1; cx++ {
			for cy := cy0; cy <= cy1; cy++ {
				out = append(out, g.cells[cellKey{cx: int32(cx), cy: int32(cy)}]...)
			}
		}
	}
	sort.Ints(out)
	return out
}

// QueryCone appends to out the indices of entities inside the cone
// (origin, direction, range, halfAngle). Candidates come from the
// buckets overlapping the circumscribing circle, then each is
// exact-tested: distance <= range and
// dot(normalize(candidate-origin), direction) >= cos(halfAngle).
// positionOf resolves a candidate's current position; it reports
// false for indices that are no longer alive.
func (g *SpatialGrid) QueryCone(origin, direction vmath.Vec2, rng, halfAngle float64, positionOf func(int) (vmath.Vec2, bool), out []int) []int {
	candidates := g.QueryRadius(origin, rng, out)
	dir := direction.Normalize()
	cosHalf := math.Cos(halfAngle)
	n := 0
	for _, idx := range candidates {
		pos, ok := positionOf(idx)
		if !ok {
			continue
		}
		offset := pos.Sub(origin)
		dist := offset.Len()
		if dist > rng {
			continue
		}
		// An entity standing exactly on the origin is inside any cone.
		if dist > 0 && offset.Scale(1/dist).Dot(dir) < cosHalf-coneEpsilon {
			continue
		}
		candidates[n] = idx
		n++
	}
	return candidates[:n]
}

// coneEpsilon absorbs floating-point error in the cos comparison so a
// zero-degree cone still hits entities exactly on the aim ray.
const coneEpsilon = 1e-9
