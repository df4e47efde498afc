package trellis

import "image"

// Texture is anything with pixel bounds that a rendering backend knows how
// to draw. image.Image and *ebiten.Image both satisfy it.
type Texture interface {
	Bounds() image.Rectangle
}

// Renderer receives the draw calls of one frame.
type Renderer interface {
	BeginCamera(c *Camera)
	EndCamera()
	Clear(c Color)
	// DrawTexturedRect draws the src region of tex into dst. The dst position
	// is where origin (in dst space) lands; rotation is in degrees around it.
	DrawTexturedRect(tex Texture, src, dst Rect, origin Vec2, rotation float64, tint Color)
}

// CommandType identifies the kind of draw command.
type CommandType uint8

const (
	CommandBeginCamera  CommandType = iota // push a camera view
	CommandEndCamera                       // pop back to screen space
	CommandClear                           // fill the target
	CommandTexturedRect                    // draw a texture region
)

// DrawCommand is a single recorded draw instruction.
type DrawCommand struct {
	Type CommandType

	// CommandBeginCamera
	View [6]float64

	// CommandClear and CommandTexturedRect
	Color Color

	// CommandTexturedRect
	Texture  Texture
	Source   Rect
	Dest     Rect
	Origin   Vec2
	Rotation float64
}

// CommandBuffer is a Renderer that records commands in call order, for a
// backend to replay later.
type CommandBuffer struct {
	commands []DrawCommand
}

// NewCommandBuffer returns a buffer with room for capacity commands.
func NewCommandBuffer(capacity int) *CommandBuffer {
	return &CommandBuffer{commands: make([]DrawCommand, 0, capacity)}
}

// Reset empties the buffer, keeping its storage.
func (b *CommandBuffer) Reset() {
	b.commands = b.commands[:0]
}

// Commands returns the recorded commands. The returned slice MUST NOT be
// mutated and is only valid until the next Reset.
func (b *CommandBuffer) Commands() []DrawCommand { return b.commands }

// Len returns the number of recorded commands.
func (b *CommandBuffer) Len() int { return len(b.commands) }

// BeginCamera records the camera's current view matrix.
func (b *CommandBuffer) BeginCamera(c *Camera) {
	view := identityTransform
	if c != nil {
		view = c.ViewMatrix()
	}
	b.commands = append(b.commands, DrawCommand{Type: CommandBeginCamera, View: view})
}

// EndCamera records a return to screen space.
func (b *CommandBuffer) EndCamera() {
	b.commands = append(b.commands, DrawCommand{Type: CommandEndCamera})
}

// Clear records a fill.
func (b *CommandBuffer) Clear(c Color) {
	b.commands = append(b.commands, DrawCommand{Type: CommandClear, Color: c})
}

// DrawTexturedRect records a textured quad.
func (b *CommandBuffer) DrawTexturedRect(tex Texture, src, dst Rect, origin Vec2, rotation float64, tint Color) {
	b.commands = append(b.commands, DrawCommand{
		Type:     CommandTexturedRect,
		Texture:  tex,
		Source:   src,
		Dest:     dst,
		Origin:   origin,
		Rotation: rotation,
		Color:    tint,
	})
}

// CountTextured returns how many textured-rect commands were recorded.
func (b *CommandBuffer) CountTextured() int {
	n := 0
	for i := range b.commands {
		if b.commands[i].Type == CommandTexturedRect {
			n++
		}
	}
	return n
}
