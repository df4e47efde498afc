package trellis

import (
	"image"
	"testing"
)

func TestCommandBufferRecordsInOrder(t *testing.T) {
	buf := NewCommandBuffer(4)
	cam := NewCamera()
	cam.Offset = Vec2{10, 20}
	tex := image.NewRGBA(image.Rect(0, 0, 4, 4))

	buf.BeginCamera(cam)
	buf.Clear(ColorBlack)
	buf.DrawTexturedRect(tex, Rect{Width: 4, Height: 4}, Rect{X: 1, Y: 2, Width: 8, Height: 8}, Vec2{4, 4}, 45, ColorMagenta)
	buf.EndCamera()

	cmds := buf.Commands()
	want := []CommandType{CommandBeginCamera, CommandClear, CommandTexturedRect, CommandEndCamera}
	if len(cmds) != len(want) {
		t.Fatalf("len = %d, want %d", len(cmds), len(want))
	}
	for i, w := range want {
		if cmds[i].Type != w {
			t.Errorf("command %d = %v, want %v", i, cmds[i].Type, w)
		}
	}
	if cmds[0].View != cam.ViewMatrix() {
		t.Errorf("View = %v, want %v", cmds[0].View, cam.ViewMatrix())
	}
	if cmds[1].Color != ColorBlack {
		t.Errorf("clear color = %v", cmds[1].Color)
	}
	d := cmds[2]
	if d.Texture != Texture(tex) || d.Dest.X != 1 || d.Origin != (Vec2{4, 4}) || d.Rotation != 45 || d.Color != ColorMagenta {
		t.Errorf("textured rect = %+v", d)
	}
}

func TestCommandBufferNilCamera(t *testing.T) {
	buf := NewCommandBuffer(0)
	buf.BeginCamera(nil)
	if buf.Commands()[0].View != identityTransform {
		t.Errorf("View = %v, want identity", buf.Commands()[0].View)
	}
}

func TestCommandBufferReset(t *testing.T) {
	buf := NewCommandBuffer(0)
	buf.Clear(ColorWhite)
	buf.DrawTexturedRect(nil, Rect{}, Rect{}, Vec2{}, 0, ColorWhite)
	buf.DrawTexturedRect(nil, Rect{}, Rect{}, Vec2{}, 0, ColorWhite)
	if buf.Len() != 3 || buf.CountTextured() != 2 {
		t.Errorf("Len = %d, CountTextured = %d", buf.Len(), buf.CountTextured())
	}
	buf.Reset()
	if buf.Len() != 0 || buf.CountTextured() != 0 {
		t.Errorf("after Reset Len = %d", buf.Len())
	}
}
