package trellis

import (
	"errors"
	"math"
)

// Tuning constants for DynamicBody. They are empirical offsets chosen so
// that sprites line up with their colliders, not physical quantities.
const (
	DynamicForceScale      = 100.0 // multiplier on forces and torques
	dynamicAnchorDivisor   = 40.0  // body spawn offset: (scale*scale)/40
	dynamicBoxDivisor      = 4.0   // collider half extents: (size*scale)/4
	dynamicReadbackDivisor = 20.0  // local readback anchor: -(size*scale)/20
	staticBoxDivisor       = 2.0   // collider half extents: (size*scale)/2
)

var errAlreadyAttached = errors.New("trellis: body already attached to a physics world")

// PhysicsBodyComponent is the common surface of DynamicBody and StaticBody.
// Look it up with ComponentOf[PhysicsBodyComponent](e, CapPhysicsBody).
type PhysicsBodyComponent interface {
	Component
	Body() PhysicsBody
	ApplyForce(f Vec2)
	ApplyTorque(t float64)
	SetLinearDamping(d float64)
	SetAngularDamping(d float64)
}

// bodyHandle holds the backend body plus damping requested before attach.
type bodyHandle struct {
	world          PhysicsWorld
	body           PhysicsBody
	linearDamping  float64
	angularDamping float64
}

func (h *bodyHandle) attach(w PhysicsWorld, def BodyDef, halfW, halfH float64) error {
	if h.body != nil {
		return errAlreadyAttached
	}
	def.LinearDamping = h.linearDamping
	def.AngularDamping = h.angularDamping
	b, err := w.CreateBody(def)
	if err != nil {
		return err
	}
	b.AttachBox(halfW, halfH)
	h.world = w
	h.body = b
	return nil
}

// Body returns the backend body, or nil before attach.
func (h *bodyHandle) Body() PhysicsBody { return h.body }

// SetLinearDamping forwards to the body, or records it for attach.
func (h *bodyHandle) SetLinearDamping(d float64) {
	h.linearDamping = d
	if h.body != nil {
		h.body.SetLinearDamping(d)
	}
}

// SetAngularDamping forwards to the body, or records it for attach.
func (h *bodyHandle) SetAngularDamping(d float64) {
	h.angularDamping = d
	if h.body != nil {
		h.body.SetAngularDamping(d)
	}
}

// Release destroys the backend body.
func (h *bodyHandle) Release() error {
	if h.body == nil {
		return nil
	}
	h.world.DestroyBody(h.body)
	h.body = nil
	h.world = nil
	return nil
}

func (h *bodyHandle) mustBody(kind string) PhysicsBody {
	if h.body == nil {
		panic("trellis: " + kind + " used before it was attached to a physics world")
	}
	return h.body
}

// --- DynamicBody ---

// DynamicBody simulates its entity. Every frame it overwrites the entity's
// Position and Rotation with the body's transform.
type DynamicBody struct {
	bodyHandle
}

// NewDynamicBody returns an unattached dynamic body component.
func NewDynamicBody() *DynamicBody { return &DynamicBody{} }

// Capabilities registers the body under CapPhysicsBody and CapDynamicBody.
func (d *DynamicBody) Capabilities() []Capability {
	return []Capability{CapPhysicsBody, CapDynamicBody}
}

// AttachPhysics creates the body at the entity's position offset by
// (scale*scale)/40 with a box collider of half extents (size*scale)/4.
func (d *DynamicBody) AttachPhysics(w PhysicsWorld, e *Entity) error {
	ext := e.Extent()
	def := BodyDef{
		Type:     BodyDynamic,
		Position: e.Position.Add(e.Scale.Mul(e.Scale).DivScalar(dynamicAnchorDivisor)),
		Angle:    e.Rotation.Radians(),
	}
	return d.attach(w, def, ext.X/dynamicBoxDivisor, ext.Y/dynamicBoxDivisor)
}

// Update copies the simulated transform onto e. The position is read at the
// local anchor -(size*scale)/20. Panics if the body was never attached.
func (d *DynamicBody) Update(e *Entity) {
	b := d.mustBody("dynamic body")
	anchor := e.Extent().DivScalar(dynamicReadbackDivisor).Neg()
	e.Position = b.WorldPoint(anchor)
	e.Rotation.Set(b.Angle() * 180 / math.Pi)
}

// ApplyForce applies f*100 at the body's center.
func (d *DynamicBody) ApplyForce(f Vec2) {
	d.mustBody("dynamic body").ApplyForce(f.Scale(DynamicForceScale))
}

// ApplyTorque applies t*100.
func (d *DynamicBody) ApplyTorque(t float64) {
	d.mustBody("dynamic body").ApplyTorque(t * DynamicForceScale)
}

// --- StaticBody ---

// StaticBody anchors an immovable collider to its entity. It never writes
// the entity's transform.
type StaticBody struct {
	bodyHandle
}

// NewStaticBody returns an unattached static body component.
func NewStaticBody() *StaticBody { return &StaticBody{} }

// Capabilities registers the body under CapPhysicsBody and CapStaticBody.
func (s *StaticBody) Capabilities() []Capability {
	return []Capability{CapPhysicsBody, CapStaticBody}
}

// AttachPhysics creates the body at the entity's position with a box
// collider of half extents (size*scale)/2.
func (s *StaticBody) AttachPhysics(w PhysicsWorld, e *Entity) error {
	ext := e.Extent()
	def := BodyDef{
		Type:     BodyStatic,
		Position: e.Position,
		Angle:    e.Rotation.Radians(),
	}
	return s.attach(w, def, ext.X/staticBoxDivisor, ext.Y/staticBoxDivisor)
}

// Update does nothing; static bodies never move their entity.
func (s *StaticBody) Update(*Entity) {}

// ApplyForce forwards f unscaled.
func (s *StaticBody) ApplyForce(f Vec2) {
	s.mustBody("static body").ApplyForce(f)
}

// ApplyTorque forwards t unscaled.
func (s *StaticBody) ApplyTorque(t float64) {
	s.mustBody("static body").ApplyTorque(t)
}
