package trellis

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for the camera target.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the scene. A world point at Target is drawn
// at screen point Offset, rotated by Rotation (degrees) and scaled by Zoom.
type Camera struct {
	// Target is the world-space point the camera looks at.
	Target Vec2
	// Offset is the screen-space point Target is drawn at.
	Offset Vec2
	// Rotation is the camera rotation in degrees.
	Rotation Angle
	// Zoom is the scale factor (1.0 = no zoom, >1 = zoom in, <1 = zoom out).
	// Values <= 0 are treated as 1.
	Zoom float64
	// Viewport is the screen-space size used for bounds clamping and
	// VisibleBounds.
	Viewport Rect

	// BoundsEnabled clamps Target so the visible area stays within Bounds.
	BoundsEnabled bool
	// Bounds is the world-space rectangle the camera is clamped to when
	// BoundsEnabled is true.
	Bounds Rect

	follow       EntityID
	followOffset Vec2
	followLerp   float64

	scrollTween *scrollAnim
}

// NewCamera creates a camera with zoom 1 looking at the origin.
func NewCamera() *Camera {
	return &Camera{Zoom: 1}
}

func (c *Camera) zoom() float64 {
	if c.Zoom <= 0 {
		return 1
	}
	return c.Zoom
}

// Follow makes the camera track an entity with the given offset and lerp
// factor. A lerp of 1.0 snaps immediately; lower values give smoother
// following. Following stops when the entity is released.
func (c *Camera) Follow(id EntityID, offset Vec2, lerp float64) {
	c.follow = id
	c.followOffset = offset
	c.followLerp = lerp
}

// Unfollow stops tracking the current entity.
func (c *Camera) Unfollow() {
	c.follow = NoEntity
}

// Following returns the tracked entity, or NoEntity.
func (c *Camera) Following() EntityID { return c.follow }

// ScrollTo animates Target to (x, y) over duration seconds.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.Target.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Target.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool { return c.scrollTween != nil }

// SetBounds enables camera bounds clamping.
func (c *Camera) SetBounds(bounds Rect) {
	c.BoundsEnabled = true
	c.Bounds = bounds
}

// ClearBounds disables camera bounds clamping.
func (c *Camera) ClearBounds() {
	c.BoundsEnabled = false
}

// update advances follow, scroll, and bounds clamping. Called once per frame
// before the camera is handed to the renderer.
func (c *Camera) update(dt float32, s *Scene) {
	if c.follow != NoEntity {
		e := s.entities.get(c.follow)
		if e == nil {
			c.follow = NoEntity
		} else {
			goal := e.Position.Add(c.followOffset)
			c.Target = c.Target.Add(goal.Sub(c.Target).Scale(c.followLerp))
		}
	}

	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			val, done := c.scrollTween.tweenX.Update(dt)
			c.Target.X = float64(val)
			c.scrollTween.doneX = done
		}
		if !c.scrollTween.doneY {
			val, done := c.scrollTween.tweenY.Update(dt)
			c.Target.Y = float64(val)
			c.scrollTween.doneY = done
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}

	if c.BoundsEnabled {
		c.clampToBounds()
	}
}

// clampToBounds restricts Target so the visible area stays within Bounds.
func (c *Camera) clampToBounds() {
	z := c.zoom()
	minX := c.Bounds.X + c.Offset.X/z
	maxX := c.Bounds.X + c.Bounds.Width - (c.Viewport.Width-c.Offset.X)/z
	minY := c.Bounds.Y + c.Offset.Y/z
	maxY := c.Bounds.Y + c.Bounds.Height - (c.Viewport.Height-c.Offset.Y)/z

	// If bounds are smaller than visible area, center the camera.
	if minX > maxX {
		c.Target.X = c.Bounds.X + c.Bounds.Width/2
	} else {
		c.Target.X = math.Max(minX, math.Min(c.Target.X, maxX))
	}
	if minY > maxY {
		c.Target.Y = c.Bounds.Y + c.Bounds.Height/2
	} else {
		c.Target.Y = math.Max(minY, math.Min(c.Target.Y, maxY))
	}
}

// ViewMatrix returns the world-to-screen affine matrix:
//
//	Translate(Offset) * Scale(Zoom) * Rotate(Rotation) * Translate(-Target)
func (c *Camera) ViewMatrix() [6]float64 {
	m := translateAffine(c.Offset.X, c.Offset.Y)
	m = multiplyAffine(m, scaleAffine(c.zoom()))
	m = multiplyAffine(m, rotateAffine(c.Rotation.Radians()))
	return multiplyAffine(m, translateAffine(-c.Target.X, -c.Target.Y))
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(w Vec2) Vec2 {
	x, y := transformPoint(c.ViewMatrix(), w.X, w.Y)
	return Vec2{x, y}
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(p Vec2) Vec2 {
	x, y := transformPoint(invertAffine(c.ViewMatrix()), p.X, p.Y)
	return Vec2{x, y}
}

// VisibleBounds returns the axis-aligned bounding rect of the viewport in
// world space.
func (c *Camera) VisibleBounds() Rect {
	inv := invertAffine(c.ViewMatrix())

	vx := c.Viewport.X
	vy := c.Viewport.Y
	vr := vx + c.Viewport.Width
	vb := vy + c.Viewport.Height

	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}
