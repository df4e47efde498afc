package trellis

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownAction is returned when injecting input for an unbound action.
var ErrUnknownAction = errors.New("trellis: unknown input action")

// Key is a backend key code. The ebiten backend uses ebiten.Key values.
type Key int

// KeySource reports the state of physical keys. Backends implement it; a nil
// source reports every key as up.
type KeySource interface {
	IsKeyDown(k Key) bool
	IsKeyJustPressed(k Key) bool
	IsKeyJustReleased(k Key) bool
}

// syntheticKeyEvent is a single injected key transition.
type syntheticKeyEvent struct {
	key     Key
	pressed bool
}

// Input maps named actions to keys and answers per-frame queries about them.
// Synthetic key events can be injected for tests and scripted runs; they are
// consumed one per frame and combined with the physical key state.
type Input struct {
	src      KeySource
	bindings map[string]Key

	injectQueue []syntheticKeyEvent
	injected    map[Key]bool
	injectedOld map[Key]bool
}

// NewInput creates an Input reading physical keys from src, which may be nil.
func NewInput(src KeySource) *Input {
	return &Input{
		src:         src,
		bindings:    make(map[string]Key),
		injected:    make(map[Key]bool),
		injectedOld: make(map[Key]bool),
	}
}

// SetSource replaces the physical key source.
func (in *Input) SetSource(src KeySource) { in.src = src }

// Bind maps action to k, replacing any earlier binding.
func (in *Input) Bind(action string, k Key) { in.bindings[action] = k }

// Unbind removes action.
func (in *Input) Unbind(action string) { delete(in.bindings, action) }

// Binding returns the key bound to action.
func (in *Input) Binding(action string) (Key, bool) {
	k, ok := in.bindings[action]
	return k, ok
}

// Actions returns the bound action names, sorted.
func (in *Input) Actions() []string {
	names := make([]string, 0, len(in.bindings))
	for name := range in.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BindNames binds every action in names to the key parse returns for its
// key name. It stops at the first name parse rejects.
func (in *Input) BindNames(names map[string]string, parse func(string) (Key, error)) error {
	actions := make([]string, 0, len(names))
	for action := range names {
		actions = append(actions, action)
	}
	sort.Strings(actions)
	for _, action := range actions {
		k, err := parse(names[action])
		if err != nil {
			return fmt.Errorf("bind %q to %q: %w", action, names[action], err)
		}
		in.Bind(action, k)
	}
	return nil
}

// --- Queries ---

// Held reports whether the action's key is down. Unbound actions are never held.
func (in *Input) Held(action string) bool {
	k, ok := in.bindings[action]
	if !ok {
		return false
	}
	if in.injected[k] {
		return true
	}
	return in.src != nil && in.src.IsKeyDown(k)
}

// Released reports whether the action's key is up. Unbound actions are
// always released.
func (in *Input) Released(action string) bool {
	return !in.Held(action)
}

// JustPressed reports whether the action's key went down this frame.
func (in *Input) JustPressed(action string) bool {
	k, ok := in.bindings[action]
	if !ok {
		return false
	}
	if in.injected[k] && !in.injectedOld[k] {
		return true
	}
	return in.src != nil && in.src.IsKeyJustPressed(k)
}

// JustReleased reports whether the action's key went up this frame.
func (in *Input) JustReleased(action string) bool {
	k, ok := in.bindings[action]
	if !ok {
		return false
	}
	if !in.injected[k] && in.injectedOld[k] {
		return true
	}
	return in.src != nil && in.src.IsKeyJustReleased(k)
}

// --- Injection ---

// InjectPress queues a synthetic press of the action's key. The event is
// consumed on the next frame.
func (in *Input) InjectPress(action string) error {
	return in.inject(action, true)
}

// InjectRelease queues a synthetic release of the action's key.
func (in *Input) InjectRelease(action string) error {
	return in.inject(action, false)
}

// InjectTap queues a press followed by a release. Consumes two frames.
func (in *Input) InjectTap(action string) error {
	if err := in.InjectPress(action); err != nil {
		return err
	}
	return in.InjectRelease(action)
}

func (in *Input) inject(action string, pressed bool) error {
	k, ok := in.bindings[action]
	if !ok {
		return fmt.Errorf("inject %q: %w", action, ErrUnknownAction)
	}
	in.injectQueue = append(in.injectQueue, syntheticKeyEvent{key: k, pressed: pressed})
	return nil
}

// Pending returns the number of queued synthetic events.
func (in *Input) Pending() int { return len(in.injectQueue) }

// update snapshots the injected state and pops one queued event. Called once
// per frame before the scene steps.
func (in *Input) update() {
	for k := range in.injectedOld {
		delete(in.injectedOld, k)
	}
	for k, down := range in.injected {
		in.injectedOld[k] = down
	}
	if len(in.injectQueue) == 0 {
		return
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]
	if evt.pressed {
		in.injected[evt.key] = true
	} else {
		delete(in.injected, evt.key)
	}
}
