package trellis

import (
	"errors"
	"image/color"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a backend submits the draw.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite   = Color{1, 1, 1, 1}
	ColorBlack   = Color{0, 0, 0, 1}
	ColorMagenta = Color{1, 0, 1, 1}
)

// RGBA converts the color to an 8-bit non-premultiplied color.RGBA value.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: channel8(c.R),
		G: channel8(c.G),
		B: channel8(c.B),
		A: channel8(c.A),
	}
}

func channel8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Errors returned by the core. Callers match them with errors.Is.
var (
	ErrIndexOutOfRange = errors.New("trellis: index out of range")
	ErrStaleEntity     = errors.New("trellis: stale entity id")
	ErrUnknownProperty = errors.New("trellis: unknown scene property")
	ErrSceneClosed     = errors.New("trellis: scene closed")
	ErrNoScene         = errors.New("trellis: no active scene")
)
