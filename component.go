package trellis

import (
	"fmt"
	"sync"
)

// Component is a behavior unit attached to an Entity.
//
// AttachPhysics runs once, when the owning entity enters a Scene, for every
// component attached at that moment. Update runs once per frame before the
// entity's own OnUpdate hook.
type Component interface {
	AttachPhysics(world PhysicsWorld, e *Entity) error
	Update(e *Entity)
}

// Releaser is implemented by components that hold backend state which must
// be freed when the owning entity is torn down.
type Releaser interface {
	Release() error
}

// Drawer is implemented by components that draw during the entity's draw
// step. Drawers run in attachment order, before the entity's OnDraw hook.
type Drawer interface {
	Draw(e *Entity, r Renderer)
}

// Capable is implemented by components that register themselves under one or
// more capability tags when attached.
type Capable interface {
	Capabilities() []Capability
}

// ComponentFunc adapts a plain function to a Component with no physics state.
type ComponentFunc func(e *Entity)

// AttachPhysics does nothing.
func (f ComponentFunc) AttachPhysics(PhysicsWorld, *Entity) error { return nil }

// Update calls f(e).
func (f ComponentFunc) Update(e *Entity) { f(e) }

// --- Capability registry ---

// Capability tags a kind of component for constant-time lookup on an Entity.
// The zero Capability is never registered.
type Capability uint32

var capRegistry = struct {
	sync.Mutex
	names []string
}{names: []string{""}}

// NewCapability registers a new capability tag. Call it from package-level
// var declarations so tags are fixed before any entity is built.
func NewCapability(name string) Capability {
	capRegistry.Lock()
	defer capRegistry.Unlock()
	capRegistry.names = append(capRegistry.names, name)
	return Capability(len(capRegistry.names) - 1)
}

// String returns the name the capability was registered with.
func (c Capability) String() string {
	capRegistry.Lock()
	defer capRegistry.Unlock()
	if int(c) < len(capRegistry.names) && c != 0 {
		return capRegistry.names[c]
	}
	return fmt.Sprintf("Capability(%d)", uint32(c))
}

// Built-in capabilities.
var (
	CapPhysicsBody = NewCapability("physics-body")
	CapDynamicBody = NewCapability("dynamic-body")
	CapStaticBody  = NewCapability("static-body")
	CapSprite      = NewCapability("sprite")
)

// ComponentOf returns the component registered on e under cap, typed as T.
// The second result is false when nothing is registered under cap or the
// registered component is not a T.
func ComponentOf[T Component](e *Entity, cap Capability) (T, bool) {
	var zero T
	c, ok := e.caps[cap]
	if !ok {
		return zero, false
	}
	t, ok := c.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// FirstComponent returns the first attached component, in attachment order,
// whose dynamic type is T. Linear in the number of components.
func FirstComponent[T Component](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
