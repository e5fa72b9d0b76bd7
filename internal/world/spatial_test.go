package world

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AgentService/vibe-arena/internal/vmath"
)

func TestQueryRadiusFindsOwnBucket(t *testing.T) {
	g := NewSpatialGrid(100)
	positions := []vmath.Vec2{
		{X: 5, Y: 5},
		{X: 150, Y: 90},
		{X: -20, Y: -300},
		{X: 999, Y: 999},
	}
	for i, p := range positions {
		g.Insert(i, p)
	}

	// Every live entity must come back from a query at its own position.
	for i, p := range positions {
		got := g.QueryRadius(p, 1, nil)
		assert.Contains(t, got, i, "entity %d missing from its own bucket", i)
	}
}

func TestQueryRadiusAfterMove(t *testing.T) {
	g := NewSpatialGrid(100)
	g.Insert(0, vmath.V(10, 10))

	g.Move(0, vmath.V(10, 10), vmath.V(510, 510))

	assert.NotContains(t, g.QueryRadius(vmath.V(10, 10), 30, nil), 0, "stale bucket after move")
	assert.Contains(t, g.QueryRadius(vmath.V(510, 510), 30, nil), 0)
}

func TestMoveWithinSameCellKeepsMembership(t *testing.T) {
	g := NewSpatialGrid(100)
	g.Insert(0, vmath.V(10, 10))
	g.Move(0, vmath.V(10, 10), vmath.V(90, 90))
	assert.Contains(t, g.QueryRadius(vmath.V(90, 90), 5, nil), 0)
}

func TestRemoveDropsEntity(t *testing.T) {
	g := NewSpatialGrid(100)
	g.Insert(0, vmath.V(50, 50))
	g.Insert(1, vmath.V(60, 60))

	g.Remove(0, vmath.V(50, 50))

	got := g.QueryRadius(vmath.V(50, 50), 100, nil)
	assert.NotContains(t, got, 0)
	assert.Contains(t, got, 1)
}

func TestQueryRadiusIsSortedSuperset(t *testing.T) {
	g := NewSpatialGrid(100)
	// Same cell, inserted out of order.
	g.Insert(7, vmath.V(10, 10))
	g.Insert(2, vmath.V(20, 20))
	g.Insert(5, vmath.V(30, 30))

	got := g.QueryRadius(vmath.V(10, 10), 5, nil)
	// Conservative superset: the whole bucket comes back, ascending.
	assert.Equal(t, []int{2, 5, 7}, got)
}

func TestQueryConeFullCircleReturnsAllAlive(t *testing.T) {
	g := NewSpatialGrid(100)
	positions := map[int]vmath.Vec2{
		0: {X: 100, Y: 0},
		1: {X: -200, Y: 50},
		2: {X: 0, Y: 400},
		3: {X: -5, Y: -5},
	}
	for i, p := range positions {
		g.Insert(i, p)
	}
	positionOf := func(i int) (vmath.Vec2, bool) {
		p, ok := positions[i]
		return p, ok
	}

	got := g.QueryCone(vmath.V(0, 0), vmath.V(1, 0), 1e6, math.Pi, positionOf, nil)
	assert.Equal(t, []int{0, 1, 2, 3}, got, "360-degree cone with huge range must return every live entity")
}

func TestQueryConeZeroAngleHitsOnlyOnRay(t *testing.T) {
	g := NewSpatialGrid(100)
	positions := map[int]vmath.Vec2{
		0: {X: 50, Y: 0},  // exactly on the +X ray
		1: {X: 50, Y: 3},  // slightly off
		2: {X: -50, Y: 0}, // behind
	}
	for i, p := range positions {
		g.Insert(i, p)
	}
	positionOf := func(i int) (vmath.Vec2, bool) {
		p, ok := positions[i]
		return p, ok
	}

	got := g.QueryCone(vmath.V(0, 0), vmath.V(1, 0), 100, 0, positionOf, nil)
	assert.Equal(t, []int{0}, got)
}

func TestQueryConeRespectsRangeAndAngle(t *testing.T) {
	g := NewSpatialGrid(100)
	positions := map[int]vmath.Vec2{
		0: {X: 80, Y: 10},   // inside
		1: {X: 300, Y: 0},   // too far
		2: {X: 50, Y: 200},  // outside half-angle
		3: {X: 60, Y: -20},  // inside, below the axis
	}
	for i, p := range positions {
		g.Insert(i, p)
	}
	positionOf := func(i int) (vmath.Vec2, bool) {
		p, ok := positions[i]
		return p, ok
	}

	got := g.QueryCone(vmath.V(0, 0), vmath.V(1, 0), 150, math.Pi/4, positionOf, nil)
	assert.Equal(t, []int{0, 3}, got)
}

func TestQueryConeSkipsDeadCandidates(t *testing.T) {
	g := NewSpatialGrid(100)
	g.Insert(0, vmath.V(50, 0))
	g.Insert(1, vmath.V(60, 0))

	alive := map[int]vmath.Vec2{1: {X: 60, Y: 0}}
	positionOf := func(i int) (vmath.Vec2, bool) {
		p, ok := alive[i]
		return p, ok
	}

	got := g.QueryCone(vmath.V(0, 0), vmath.V(1, 0), 100, math.Pi, positionOf, nil)
	assert.Equal(t, []int{1}, got)
}

func TestNegativeCoordinateCells(t *testing.T) {
	g := NewSpatialGrid(100)
	// Positions straddling the origin must land in distinct cells;
	// floor division, not truncation.
	g.Insert(0, vmath.V(-10, -10))
	g.Insert(1, vmath.V(10, 10))

	require.NotContains(t, g.QueryRadius(vmath.V(-50, -50), 5, nil), 1)
	assert.Contains(t, g.QueryRadius(vmath.V(-10, -10), 1, nil), 0)
}

func TestQueryBufferReuse(t *testing.T) {
	g := NewSpatialGrid(100)
	for i := 0; i < 10; i++ {
		g.Insert(i, vmath.V(float64(i), 0))
	}

	buf := make([]int, 0, 32)
	got := g.QueryRadius(vmath.V(0, 0), 50, buf[:0])
	require.Len(t, got, 10)

	// Second query reuses the same backing array.
	got2 := g.QueryRadius(vmath.V(0, 0), 50, buf[:0])
	assert.Equal(t, got, got2)
}
