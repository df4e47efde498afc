package trellis

import (
	"fmt"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Mul returns the component-wise product.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Div returns the component-wise quotient.
func (v Vec2) Div(o Vec2) Vec2 { return Vec2{v.X / o.X, v.Y / o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// DivScalar returns v / s.
func (v Vec2) DivScalar(s float64) Vec2 { return Vec2{v.X / s, v.Y / s} }

// Neg returns -v.
func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

// At returns component i (0 is X, 1 is Y). Any other index fails with
// ErrIndexOutOfRange; the index is never clamped.
func (v Vec2) At(i int) (float64, error) {
	switch i {
	case 0:
		return v.X, nil
	case 1:
		return v.Y, nil
	default:
		return 0, fmt.Errorf("vec2 index %d: %w", i, ErrIndexOutOfRange)
	}
}

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized divides each axis by its own absolute value, so every
// component of the result is +1 or -1 (NaN for a zero component). It
// extracts per-axis signs; for a unit-length direction use Unit.
func (v Vec2) Normalized() Vec2 {
	return Vec2{v.X / math.Abs(v.X), v.Y / math.Abs(v.Y)}
}

// Unit returns v scaled to length 1, or the zero vector if v has no length.
func (v Vec2) Unit() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotated returns v rotated by a (degrees, counter-clockwise in a Y-up frame).
// v is not modified.
func (v Vec2) Rotated(a Angle) Vec2 {
	sin, cos := math.Sincos(a.Radians())
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// ApproxEqual reports whether v and o differ by at most eps on each axis.
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
