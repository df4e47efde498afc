package trellis

// Entity is a node of the scene graph. It owns a transform, an ordered list
// of components and, once inserted into a Scene, a place in the hierarchy.
//
// Positions are absolute: a parent's per-frame movement is added to every
// descendant rather than composed through a local transform.
//
// Behavior is supplied through hook fields rather than embedding. All hooks
// are optional.
type Entity struct {
	Name     string
	Visible  bool
	Position Vec2
	Rotation Angle
	Size     Vec2
	Scale    Vec2

	// UserData is free for application use.
	UserData any

	// OnStart runs once, when the entity is inserted into a Scene, before any
	// component is attached to the physics world.
	OnStart func(e *Entity)
	// OnUpdate runs every frame after the components' Update.
	OnUpdate func(e *Entity, dt float64)
	// OnDraw runs every frame the entity is visible, after component drawers.
	OnDraw func(e *Entity, r Renderer)
	// OnRelease runs once during teardown, after components are released.
	OnRelease func(e *Entity) error

	// Hierarchy (arena references, owned by the scene)
	id       EntityID
	scene    *Scene
	parent   EntityID
	children []EntityID

	components []Component
	caps       map[Capability]Component

	prevPosition Vec2
	started      bool
	released     bool
}

// NewEntity creates a visible entity with unit size and scale.
func NewEntity(name string) *Entity {
	return &Entity{
		Name:    name,
		Visible: true,
		Size:    Vec2{1, 1},
		Scale:   Vec2{1, 1},
	}
}

// ID returns the entity's handle, or NoEntity if it is not in a scene.
func (e *Entity) ID() EntityID { return e.id }

// Scene returns the owning scene, or nil.
func (e *Entity) Scene() *Scene { return e.scene }

// Parent returns the parent handle, or NoEntity for roots and detached entities.
func (e *Entity) Parent() EntityID { return e.parent }

// Children returns the child handles in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (e *Entity) Children() []EntityID { return e.children }

// NumChildren returns the number of direct children.
func (e *Entity) NumChildren() int { return len(e.children) }

// IsStarted reports whether OnStart has run.
func (e *Entity) IsStarted() bool { return e.started }

// IsReleased reports whether the entity has been torn down.
func (e *Entity) IsReleased() bool { return e.released }

// Extent returns Size scaled by Scale.
func (e *Entity) Extent() Vec2 { return e.Size.Mul(e.Scale) }

// --- Components ---

// AddComponent appends c to the entity's components and registers it under
// its capabilities. A capability already held by an earlier component keeps
// that component.
//
// Components added after the entity entered a scene are NOT attached to the
// physics world; use Scene.AttachComponent for that.
func (e *Entity) AddComponent(c Component) {
	if c == nil {
		panic("trellis: cannot add nil component")
	}
	e.components = append(e.components, c)
	capable, ok := c.(Capable)
	if !ok {
		return
	}
	if e.caps == nil {
		e.caps = make(map[Capability]Component, 2)
	}
	for _, cap := range capable.Capabilities() {
		if _, taken := e.caps[cap]; !taken {
			e.caps[cap] = c
		}
	}
}

// Components returns the attached components in attachment order. The
// returned slice MUST NOT be mutated by the caller.
func (e *Entity) Components() []Component { return e.components }

// Component returns the component registered under cap.
func (e *Entity) Component(cap Capability) (Component, bool) {
	c, ok := e.caps[cap]
	return c, ok
}

// HasCapability reports whether any component is registered under cap.
func (e *Entity) HasCapability(cap Capability) bool {
	_, ok := e.caps[cap]
	return ok
}

// --- Frame protocol ---

// updateComponents runs every component's Update in attachment order,
// stopping early if one of them releases the entity.
func (e *Entity) updateComponents() {
	for _, c := range e.components {
		if e.released {
			return
		}
		c.Update(e)
	}
}

// draw runs component drawers then OnDraw.
func (e *Entity) draw(r Renderer) {
	for _, c := range e.components {
		if d, ok := c.(Drawer); ok {
			d.Draw(e, r)
		}
	}
	if e.OnDraw != nil {
		e.OnDraw(e, r)
	}
}
