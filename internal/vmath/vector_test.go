package vmath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	n := V(3, 4).Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-9)
	assert.InDelta(t, 0.8, n.Y, 1e-9)
	assert.InDelta(t, 1, n.Len(), 1e-9)

	assert.Equal(t, Vec2{}, Vec2{}.Normalize(), "zero vector stays zero")
}

func TestDistances(t *testing.T) {
	a, b := V(1, 2), V(4, 6)
	assert.InDelta(t, 5, Dist(a, b), 1e-9)
	assert.InDelta(t, 25, DistSq(a, b), 1e-9)
	assert.InDelta(t, 16, a.Dot(b), 1e-9)
}
