package trellis

import (
	"math"
	"testing"
)

// --- Affine helpers ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	if got := multiplyAffine(identityTransform, m); got != m {
		t.Errorf("I*m = %v, want %v", got, m)
	}
	if got := multiplyAffine(m, identityTransform); got != m {
		t.Errorf("m*I = %v, want %v", got, m)
	}
}

func TestInvertAffineRoundTrip(t *testing.T) {
	m := [6]float64{2, 0.5, -1, 3, 10, 20}
	inv := invertAffine(m)
	got := multiplyAffine(m, inv)
	for i := range got {
		if math.Abs(got[i]-identityTransform[i]) > epsilon {
			t.Fatalf("m*inv(m) = %v, want identity", got)
		}
	}
}

func TestInvertAffineSingular(t *testing.T) {
	m := [6]float64{1, 2, 2, 4, 5, 6}
	if got := invertAffine(m); got != identityTransform {
		t.Errorf("invert singular = %v, want identity", got)
	}
}

func TestTransformPoint(t *testing.T) {
	// scale 2 then translate (10, 20)
	m := [6]float64{2, 0, 0, 2, 10, 20}
	x, y := transformPoint(m, 3, 4)
	if x != 16 || y != 28 {
		t.Errorf("transformPoint = (%v, %v), want (16, 28)", x, y)
	}
}

// --- Hierarchy propagation ---

// chain inserts root -> child -> grandchild, all at the origin.
func chain(t *testing.T, s *Scene) (root, child, grandchild *Entity) {
	t.Helper()
	root = NewEntity("root")
	child = NewEntity("child")
	grandchild = NewEntity("grandchild")
	rid := mustAdd(t, s, root)
	cid, err := s.AddChild(rid, child)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddChild(cid, grandchild); err != nil {
		t.Fatal(err)
	}
	return root, child, grandchild
}

func TestPropagationReachesEveryDepthOnce(t *testing.T) {
	s, _ := newTestScene(t)
	root, child, grandchild := chain(t, s)
	root.OnUpdate = func(e *Entity, dt float64) { e.Position.X += 5 }

	for frame := 1; frame <= 3; frame++ {
		s.Step(1.0/60, nil)
		want := float64(5 * frame)
		if root.Position.X != want || child.Position.X != want || grandchild.Position.X != want {
			t.Fatalf("frame %d: X = %v, %v, %v, want %v each",
				frame, root.Position.X, child.Position.X, grandchild.Position.X, want)
		}
	}
}

func TestPropagationComposesOwnMovement(t *testing.T) {
	s, _ := newTestScene(t)
	root, child, grandchild := chain(t, s)
	root.OnUpdate = func(e *Entity, dt float64) { e.Position.Y += 5 }
	child.OnUpdate = func(e *Entity, dt float64) { e.Position.Y += 1 }

	s.Step(1.0/60, nil)

	if root.Position.Y != 5 {
		t.Errorf("root Y = %v, want 5", root.Position.Y)
	}
	if child.Position.Y != 6 {
		t.Errorf("child Y = %v, want 6", child.Position.Y)
	}
	if grandchild.Position.Y != 6 {
		t.Errorf("grandchild Y = %v, want 6", grandchild.Position.Y)
	}
}

func TestPlacementInOnStartIsNotMovement(t *testing.T) {
	s, _ := newTestScene(t)
	parent := NewEntity("parent")
	parent.OnStart = func(e *Entity) { e.Position = Vec2{100, 100} }
	pid := mustAdd(t, s, parent)
	child := NewEntity("child")
	s.AddChild(pid, child)

	s.Step(1.0/60, nil)

	if child.Position != (Vec2{}) {
		t.Errorf("child = %v, want origin", child.Position)
	}
}

func TestMovementBetweenFramesPropagates(t *testing.T) {
	s, _ := newTestScene(t)
	root, child, _ := chain(t, s)
	root.Position = Vec2{3, 4}

	s.Step(1.0/60, nil)

	if child.Position != (Vec2{3, 4}) {
		t.Errorf("child = %v, want (3, 4)", child.Position)
	}
}

func TestTeleportLeavesChildren(t *testing.T) {
	s, _ := newTestScene(t)
	root, child, grandchild := chain(t, s)
	root.Teleport(Vec2{50, 50})

	s.Step(1.0/60, nil)

	if root.Position != (Vec2{50, 50}) {
		t.Errorf("root = %v, want (50, 50)", root.Position)
	}
	if child.Position != (Vec2{}) || grandchild.Position != (Vec2{}) {
		t.Errorf("children moved: %v, %v", child.Position, grandchild.Position)
	}
}

func TestPropagationSkipsRemovedChild(t *testing.T) {
	s, _ := newTestScene(t)
	root, child, _ := chain(t, s)
	root.OnUpdate = func(e *Entity, dt float64) {
		e.Position.X++
		if child.Scene() != nil {
			s.Remove(child.ID())
		}
	}

	s.Step(1.0/60, nil)

	if child.Position.X != 0 {
		t.Errorf("removed child X = %v, want 0", child.Position.X)
	}
}

func TestAffineBuilders(t *testing.T) {
	x, y := transformPoint(translateAffine(3, -4), 1, 1)
	if x != 4 || y != -3 {
		t.Errorf("translate = (%v, %v), want (4, -3)", x, y)
	}
	x, y = transformPoint(scaleAffine(2.5), 2, -2)
	if x != 5 || y != -5 {
		t.Errorf("scale = (%v, %v), want (5, -5)", x, y)
	}
	x, y = transformPoint(rotateAffine(math.Pi/2), 1, 0)
	if math.Abs(x) > epsilon || math.Abs(y-1) > epsilon {
		t.Errorf("rotate = (%v, %v), want (0, 1)", x, y)
	}
}
