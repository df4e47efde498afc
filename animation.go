package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 float64 properties of an Entity at once.
// Create one with TweenPosition, TweenScale, TweenSize or TweenRotation and
// either hand it to Scene.AddTween or call Update(dt) yourself. If the
// target entity is released the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  [4]func(float64)
	target *Entity
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target. Once the target has been released, Done is set and nothing is
// written.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsReleased() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		g.apply[i](float64(val))
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

func (g *TweenGroup) add(from, to float64, duration float32, fn ease.TweenFunc, set func(float64)) {
	g.tweens[g.count] = gween.New(float32(from), float32(to), duration, fn)
	g.apply[g.count] = set
	g.count++
}

// TweenPosition animates e.Position to `to`. Children follow through the
// usual per-frame propagation.
func TweenPosition(e *Entity, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: e}
	g.add(e.Position.X, to.X, duration, fn, func(v float64) { e.Position.X = v })
	g.add(e.Position.Y, to.Y, duration, fn, func(v float64) { e.Position.Y = v })
	return g
}

// TweenScale animates e.Scale to `to`.
func TweenScale(e *Entity, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: e}
	g.add(e.Scale.X, to.X, duration, fn, func(v float64) { e.Scale.X = v })
	g.add(e.Scale.Y, to.Y, duration, fn, func(v float64) { e.Scale.Y = v })
	return g
}

// TweenSize animates e.Size to `to`.
func TweenSize(e *Entity, to Vec2, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: e}
	g.add(e.Size.X, to.X, duration, fn, func(v float64) { e.Size.X = v })
	g.add(e.Size.Y, to.Y, duration, fn, func(v float64) { e.Size.Y = v })
	return g
}

// TweenRotation animates e.Rotation by `by` degrees. The value is
// normalized into the rotation's range on every write, so turning by 720
// spins twice.
func TweenRotation(e *Entity, by float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: e}
	start := e.Rotation.Value()
	g.add(start, start+by, duration, fn, func(v float64) { e.Rotation.Set(v) })
	return g
}
