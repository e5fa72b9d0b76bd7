package vmath

import "math"

// Vec2 is a 2D vector in world units. Value type, no allocation.
type Vec2 struct {
	X float64
	Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

func (v Vec2) Len() float64   { return math.Sqrt(v.X*v.X + v.Y*v.Y) }
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector, zero-safe.
func (v Vec2) Normalize() Vec2 {
	mag := v.Len()
	if mag == 0 {
		return Vec2{}
	}
	return Vec2{v.X / mag, v.Y / mag}
}

func Dist(a, b Vec2) float64   { return a.Sub(b).Len() }
func DistSq(a, b Vec2) float64 { return a.Sub(b).LenSq() }
