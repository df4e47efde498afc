package ebitenbackend

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/trellis"
)

// Keyboard reads the physical keyboard through Ebitengine.
type Keyboard struct{}

// IsKeyDown reports whether k is held.
func (Keyboard) IsKeyDown(k trellis.Key) bool { return ebiten.IsKeyPressed(ebiten.Key(k)) }

// IsKeyJustPressed reports whether k went down this tick.
func (Keyboard) IsKeyJustPressed(k trellis.Key) bool {
	return inpututil.IsKeyJustPressed(ebiten.Key(k))
}

// IsKeyJustReleased reports whether k went up this tick.
func (Keyboard) IsKeyJustReleased(k trellis.Key) bool {
	return inpututil.IsKeyJustReleased(ebiten.Key(k))
}

// ParseKey converts an Ebitengine key name such as "ArrowLeft", "A" or
// "Space" to a trellis.Key.
func ParseKey(name string) (trellis.Key, error) {
	var k ebiten.Key
	if err := k.UnmarshalText([]byte(name)); err != nil {
		return 0, fmt.Errorf("parse key %q: %w", name, err)
	}
	return trellis.Key(k), nil
}

// BindConfig binds every action in cfg to its named key.
func BindConfig(in *trellis.Input, cfg trellis.InputConfig) error {
	return in.BindNames(cfg.Bindings, ParseKey)
}
