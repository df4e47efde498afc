package trellis

import (
	"errors"
	"fmt"
	"testing"
)

// fakeKeys is a KeySource driven by the test.
type fakeKeys struct {
	down, pressed, released map[Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{down: map[Key]bool{}, pressed: map[Key]bool{}, released: map[Key]bool{}}
}

func (f *fakeKeys) IsKeyDown(k Key) bool         { return f.down[k] }
func (f *fakeKeys) IsKeyJustPressed(k Key) bool  { return f.pressed[k] }
func (f *fakeKeys) IsKeyJustReleased(k Key) bool { return f.released[k] }

const (
	keyLeft Key = iota + 1
	keyRight
	keyJump
)

func TestInputUnboundAction(t *testing.T) {
	in := NewInput(nil)
	if in.Held("fire") || in.JustPressed("fire") || in.JustReleased("fire") {
		t.Error("unbound action should report nothing")
	}
	if !in.Released("fire") {
		t.Error("unbound action should be released")
	}
	if err := in.InjectPress("fire"); !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
}

func TestInputPhysicalKeys(t *testing.T) {
	keys := newFakeKeys()
	in := NewInput(keys)
	in.Bind("left", keyLeft)

	keys.down[keyLeft] = true
	keys.pressed[keyLeft] = true
	if !in.Held("left") || !in.JustPressed("left") || in.Released("left") {
		t.Error("left should be held and just pressed")
	}

	keys.down[keyLeft] = false
	keys.pressed[keyLeft] = false
	keys.released[keyLeft] = true
	if in.Held("left") || !in.JustReleased("left") {
		t.Error("left should be just released")
	}
}

func TestInputBindings(t *testing.T) {
	in := NewInput(nil)
	in.Bind("right", keyRight)
	in.Bind("left", keyLeft)
	in.Bind("left", keyJump)

	if k, ok := in.Binding("left"); !ok || k != keyJump {
		t.Errorf("Binding(left) = %v, %v; want rebind to jump", k, ok)
	}
	actions := in.Actions()
	if len(actions) != 2 || actions[0] != "left" || actions[1] != "right" {
		t.Errorf("Actions = %v, want [left right]", actions)
	}
	in.Unbind("left")
	if _, ok := in.Binding("left"); ok {
		t.Error("left should be unbound")
	}
}

func TestInputBindNames(t *testing.T) {
	in := NewInput(nil)
	keys := map[string]Key{"A": keyLeft, "D": keyRight}
	parse := func(name string) (Key, error) {
		k, ok := keys[name]
		if !ok {
			return 0, fmt.Errorf("unknown key %q", name)
		}
		return k, nil
	}

	if err := in.BindNames(map[string]string{"left": "A", "right": "D"}, parse); err != nil {
		t.Fatal(err)
	}
	if k, _ := in.Binding("right"); k != keyRight {
		t.Errorf("right = %v, want %v", k, keyRight)
	}
	if err := in.BindNames(map[string]string{"jump": "Q"}, parse); err == nil {
		t.Error("expected error for unknown key name")
	}
}

func TestInputInjectPressRelease(t *testing.T) {
	in := NewInput(nil)
	in.Bind("jump", keyJump)

	if err := in.InjectPress("jump"); err != nil {
		t.Fatal(err)
	}
	if in.Held("jump") {
		t.Error("injected press should not apply before update")
	}
	in.update()
	if !in.Held("jump") || !in.JustPressed("jump") {
		t.Error("expected held and just pressed after update")
	}
	in.update()
	if !in.Held("jump") || in.JustPressed("jump") {
		t.Error("expected held but not just pressed on the next frame")
	}

	in.InjectRelease("jump")
	in.update()
	if in.Held("jump") || !in.JustReleased("jump") {
		t.Error("expected just released")
	}
	in.update()
	if in.JustReleased("jump") {
		t.Error("just released should last one frame")
	}
}

func TestInputInjectTapTakesTwoFrames(t *testing.T) {
	in := NewInput(nil)
	in.Bind("jump", keyJump)
	if err := in.InjectTap("jump"); err != nil {
		t.Fatal(err)
	}
	if in.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", in.Pending())
	}
	in.update()
	if !in.JustPressed("jump") || in.Pending() != 1 {
		t.Error("first frame should press")
	}
	in.update()
	if !in.JustReleased("jump") || in.Pending() != 0 {
		t.Error("second frame should release")
	}
}

func TestInputInjectedCombinesWithPhysical(t *testing.T) {
	keys := newFakeKeys()
	in := NewInput(keys)
	in.Bind("left", keyLeft)
	keys.down[keyLeft] = true
	in.InjectRelease("left")
	in.update()
	if !in.Held("left") {
		t.Error("physical key should keep the action held")
	}

	in.SetSource(nil)
	if in.Held("left") {
		t.Error("nil source should report keys up")
	}
}
