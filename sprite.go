package trellis

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // register JPEG decoding for LoadTexture
	_ "image/png"  // register PNG decoding for LoadTexture
	"os"
)

// Placeholder texture dimensions.
const (
	placeholderSize = 60
	spriteSize      = 20
)

// Sprite draws a texture over its entity's extent. The texture is drawn at
// the entity's Position with size Size*Scale, rotated by Rotation around the
// top-left corner.
type Sprite struct {
	Texture Texture
	// Source is the region of Texture to draw. The zero Rect means the whole
	// texture.
	Source Rect
	Tint   Color
}

// NewSpriteComponent returns a sprite drawing tex. A nil tex draws the
// magenta placeholder.
func NewSpriteComponent(tex Texture) *Sprite {
	if tex == nil {
		tex = PlaceholderTexture()
	}
	return &Sprite{Texture: tex, Tint: ColorWhite}
}

// NewSprite creates a 20x20 entity with a Sprite component drawing tex.
func NewSprite(name string, tex Texture) *Entity {
	e := NewEntity(name)
	e.Size = Vec2{spriteSize, spriteSize}
	e.AddComponent(NewSpriteComponent(tex))
	return e
}

// Capabilities registers the sprite under CapSprite.
func (s *Sprite) Capabilities() []Capability { return []Capability{CapSprite} }

// AttachPhysics does nothing.
func (s *Sprite) AttachPhysics(PhysicsWorld, *Entity) error { return nil }

// Update does nothing.
func (s *Sprite) Update(*Entity) {}

// Draw submits the textured rect.
func (s *Sprite) Draw(e *Entity, r Renderer) {
	if s.Texture == nil {
		return
	}
	src := s.Source
	if src == (Rect{}) {
		b := s.Texture.Bounds()
		src = Rect{X: float64(b.Min.X), Y: float64(b.Min.Y), Width: float64(b.Dx()), Height: float64(b.Dy())}
	}
	ext := e.Extent()
	dst := Rect{X: e.Position.X, Y: e.Position.Y, Width: ext.X, Height: ext.Y}
	r.DrawTexturedRect(s.Texture, src, dst, Vec2{}, e.Rotation.Value(), s.Tint)
}

// PlaceholderTexture returns a fresh 60x60 magenta image.
func PlaceholderTexture() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 255, B: 255, A: 255}}, image.Point{}, draw.Src)
	return img
}

// LoadTexture decodes a PNG or JPEG file. Backends upload the image on
// first draw.
func LoadTexture(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	return img, nil
}
