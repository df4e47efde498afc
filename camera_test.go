package trellis

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestCameraDefaults(t *testing.T) {
	cam := NewCamera()
	if cam.Zoom != 1 {
		t.Errorf("Zoom = %v, want 1", cam.Zoom)
	}
	if cam.Following() != NoEntity || cam.Scrolling() {
		t.Error("new camera should be idle")
	}
	if cam.ViewMatrix() != identityTransform {
		t.Errorf("ViewMatrix = %v, want identity", cam.ViewMatrix())
	}
}

func TestCameraViewMatrixClosedForm(t *testing.T) {
	cam := NewCamera()
	cam.Target = Vec2{30, -20}
	cam.Offset = Vec2{400, 300}
	cam.Zoom = 1.5
	cam.Rotation = NewAngle(30)

	sin, cos := math.Sincos(cam.Rotation.Radians())
	z, tx, ty := cam.Zoom, cam.Target.X, cam.Target.Y
	want := [6]float64{
		z * cos, z * sin, -z * sin, z * cos,
		cam.Offset.X - z*(cos*tx-sin*ty),
		cam.Offset.Y - z*(sin*tx+cos*ty),
	}
	got := cam.ViewMatrix()
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("ViewMatrix = %v, want %v", got, want)
		}
	}
}

func TestCameraTargetMapsToOffset(t *testing.T) {
	cam := NewCamera()
	cam.Target = Vec2{100, 50}
	cam.Offset = Vec2{400, 225}
	got := cam.WorldToScreen(Vec2{100, 50})
	if !got.ApproxEqual(Vec2{400, 225}, epsilon) {
		t.Errorf("WorldToScreen(target) = %v, want offset (400, 225)", got)
	}
}

func TestCameraZoom(t *testing.T) {
	cam := NewCamera()
	cam.Zoom = 2
	got := cam.WorldToScreen(Vec2{10, 5})
	if !got.ApproxEqual(Vec2{20, 10}, epsilon) {
		t.Errorf("WorldToScreen = %v, want (20, 10)", got)
	}
	cam.Zoom = 0
	got = cam.WorldToScreen(Vec2{10, 5})
	if !got.ApproxEqual(Vec2{10, 5}, epsilon) {
		t.Errorf("zoom 0 should act as 1, got %v", got)
	}
}

func TestCameraRotation(t *testing.T) {
	cam := NewCamera()
	cam.Rotation = NewAngle(90)
	got := cam.WorldToScreen(Vec2{1, 0})
	if !got.ApproxEqual(Vec2{0, 1}, 1e-9) {
		t.Errorf("WorldToScreen rotated = %v, want (0, 1)", got)
	}
}

func TestCameraScreenToWorldRoundTrip(t *testing.T) {
	cam := NewCamera()
	cam.Target = Vec2{30, -20}
	cam.Offset = Vec2{400, 300}
	cam.Zoom = 1.5
	cam.Rotation = NewAngle(30)
	w := Vec2{123, 456}
	got := cam.ScreenToWorld(cam.WorldToScreen(w))
	if !got.ApproxEqual(w, 1e-6) {
		t.Errorf("round trip = %v, want %v", got, w)
	}
}

func TestCameraVisibleBounds(t *testing.T) {
	cam := NewCamera()
	cam.Viewport = Rect{Width: 800, Height: 600}
	cam.Offset = Vec2{400, 300}
	cam.Zoom = 2
	b := cam.VisibleBounds()
	want := Rect{X: -200, Y: -150, Width: 400, Height: 300}
	if math.Abs(b.X-want.X) > 1e-6 || math.Abs(b.Y-want.Y) > 1e-6 ||
		math.Abs(b.Width-want.Width) > 1e-6 || math.Abs(b.Height-want.Height) > 1e-6 {
		t.Errorf("VisibleBounds = %+v, want %+v", b, want)
	}
}

func TestCameraFollow(t *testing.T) {
	s, _ := newTestScene(t)
	e := NewEntity("target")
	e.Position = Vec2{100, 40}
	id := mustAdd(t, s, e)

	s.Camera.Follow(id, Vec2{10, 0}, 1)
	s.Camera.update(1.0/60, s)
	if s.Camera.Target != (Vec2{110, 40}) {
		t.Errorf("Target = %v, want (110, 40)", s.Camera.Target)
	}

	s.Camera.Follow(id, Vec2{}, 0.5)
	s.Camera.Target = Vec2{}
	s.Camera.update(1.0/60, s)
	if s.Camera.Target != (Vec2{50, 20}) {
		t.Errorf("lerped Target = %v, want (50, 20)", s.Camera.Target)
	}
}

func TestCameraFollowStopsOnRelease(t *testing.T) {
	s, _ := newTestScene(t)
	id := mustAdd(t, s, NewEntity("target"))
	s.Camera.Follow(id, Vec2{}, 1)
	if err := s.Remove(id); err != nil {
		t.Fatal(err)
	}
	s.Camera.update(1.0/60, s)
	if s.Camera.Following() != NoEntity {
		t.Error("camera should stop following a released entity")
	}
}

func TestCameraScrollTo(t *testing.T) {
	s, _ := newTestScene(t)
	cam := s.Camera
	cam.ScrollTo(100, 200, 1, ease.Linear)
	if !cam.Scrolling() {
		t.Fatal("expected Scrolling after ScrollTo")
	}
	cam.update(0.5, s)
	cam.update(0.5, s)
	if cam.Scrolling() {
		t.Error("scroll should finish after its duration")
	}
	if math.Abs(cam.Target.X-100) > 0.01 || math.Abs(cam.Target.Y-200) > 0.01 {
		t.Errorf("Target = %v, want (100, 200)", cam.Target)
	}
}

func TestCameraBoundsClamp(t *testing.T) {
	s, _ := newTestScene(t)
	cam := s.Camera
	cam.Viewport = Rect{Width: 100, Height: 100}
	cam.Offset = Vec2{50, 50}
	cam.SetBounds(Rect{Width: 1000, Height: 1000})

	cam.Target = Vec2{-500, 2000}
	cam.update(1.0/60, s)
	if cam.Target != (Vec2{50, 950}) {
		t.Errorf("clamped Target = %v, want (50, 950)", cam.Target)
	}

	cam.ClearBounds()
	cam.Target = Vec2{-500, 2000}
	cam.update(1.0/60, s)
	if cam.Target != (Vec2{-500, 2000}) {
		t.Errorf("unclamped Target = %v", cam.Target)
	}
}

func TestCameraBoundsSmallerThanViewCenters(t *testing.T) {
	s, _ := newTestScene(t)
	cam := s.Camera
	cam.Viewport = Rect{Width: 800, Height: 600}
	cam.Offset = Vec2{400, 300}
	cam.SetBounds(Rect{Width: 100, Height: 100})
	cam.update(1.0/60, s)
	if cam.Target != (Vec2{50, 50}) {
		t.Errorf("Target = %v, want bounds center (50, 50)", cam.Target)
	}
}
