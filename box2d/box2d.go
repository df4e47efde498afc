// Package box2d implements the trellis physics contract on
// github.com/ByteArena/box2d.
package box2d

import (
	"errors"
	"fmt"

	b2 "github.com/ByteArena/box2d"
	"github.com/phanxgames/trellis"
)

// Solver iteration defaults.
const (
	DefaultVelocityIterations = 8
	DefaultPositionIterations = 3
)

// Fixture densities. Static fixtures carry no mass.
const (
	dynamicDensity = 1.0
	staticDensity  = 0.0
)

var errWorldDestroyed = errors.New("box2d: world destroyed")

// Backend creates Box2D worlds.
type Backend struct {
	VelocityIterations int
	PositionIterations int
}

// NewBackend returns a backend with the default solver iterations.
func NewBackend() *Backend {
	return &Backend{
		VelocityIterations: DefaultVelocityIterations,
		PositionIterations: DefaultPositionIterations,
	}
}

// FromConfig returns a backend using cfg's solver iterations.
func FromConfig(cfg trellis.PhysicsConfig) *Backend {
	b := NewBackend()
	if cfg.VelocityIterations > 0 {
		b.VelocityIterations = cfg.VelocityIterations
	}
	if cfg.PositionIterations > 0 {
		b.PositionIterations = cfg.PositionIterations
	}
	return b
}

// NewWorld creates a world with the given gravity. Forces accumulate across
// sub-steps and are cleared once per Step.
func (b *Backend) NewWorld(gravity trellis.Vec2) (trellis.PhysicsWorld, error) {
	w := b2.MakeB2World(vec(gravity))
	w.SetAutoClearForces(false)
	return &World{
		world:   &w,
		velIter: b.VelocityIterations,
		posIter: b.PositionIterations,
	}, nil
}

// World wraps a *b2.B2World.
type World struct {
	world     *b2.B2World
	velIter   int
	posIter   int
	destroyed bool
}

// Raw exposes the underlying Box2D world.
func (w *World) Raw() *b2.B2World { return w.world }

// SetGravity changes the world's gravity.
func (w *World) SetGravity(g trellis.Vec2) { w.world.SetGravity(vec(g)) }

// Gravity returns the world's gravity.
func (w *World) Gravity() trellis.Vec2 { return fromVec(w.world.GetGravity()) }

// Step advances the world by dt, split into substeps equal steps.
func (w *World) Step(dt float64, substeps int) {
	if w.destroyed || dt <= 0 {
		return
	}
	if substeps < 1 {
		substeps = 1
	}
	h := dt / float64(substeps)
	for i := 0; i < substeps; i++ {
		w.world.Step(h, w.velIter, w.posIter)
	}
	w.world.ClearForces()
}

// CreateBody adds a body to the world.
func (w *World) CreateBody(def trellis.BodyDef) (trellis.PhysicsBody, error) {
	if w.destroyed {
		return nil, errWorldDestroyed
	}
	bd := b2.MakeB2BodyDef()
	density := dynamicDensity
	switch def.Type {
	case trellis.BodyDynamic:
		bd.Type = b2.B2BodyType.B2_dynamicBody
	case trellis.BodyStatic:
		bd.Type = b2.B2BodyType.B2_staticBody
		density = staticDensity
	case trellis.BodyKinematic:
		bd.Type = b2.B2BodyType.B2_kinematicBody
	default:
		return nil, fmt.Errorf("box2d: unknown body type %d", def.Type)
	}
	bd.Position.Set(def.Position.X, def.Position.Y)
	bd.Angle = def.Angle
	bd.LinearDamping = def.LinearDamping
	bd.AngularDamping = def.AngularDamping
	return &Body{body: w.world.CreateBody(&bd), density: density}, nil
}

// DestroyBody removes a body created by this world.
func (w *World) DestroyBody(b trellis.PhysicsBody) {
	if w.destroyed {
		return
	}
	if body, ok := b.(*Body); ok && body.body != nil {
		w.world.DestroyBody(body.body)
		body.body = nil
	}
}

// Destroy removes every body. The world is unusable afterwards.
func (w *World) Destroy() {
	if w.destroyed {
		return
	}
	for b := w.world.GetBodyList(); b != nil; {
		next := b.GetNext()
		w.world.DestroyBody(b)
		b = next
	}
	w.destroyed = true
}

// BodyCount returns the number of bodies in the world.
func (w *World) BodyCount() int {
	return w.world.GetBodyCount()
}

// Body wraps a *b2.B2Body.
type Body struct {
	body    *b2.B2Body
	density float64
}

// Raw exposes the underlying Box2D body.
func (b *Body) Raw() *b2.B2Body { return b.body }

// AttachBox adds a box fixture with the given half extents.
func (b *Body) AttachBox(halfW, halfH float64) {
	shape := b2.MakeB2PolygonShape()
	shape.SetAsBox(halfW, halfH)
	b.body.CreateFixture(&shape, b.density)
}

// Position returns the body origin in world coordinates.
func (b *Body) Position() trellis.Vec2 { return fromVec(b.body.GetPosition()) }

// WorldPoint converts a body-local point to world coordinates.
func (b *Body) WorldPoint(local trellis.Vec2) trellis.Vec2 {
	return fromVec(b.body.GetWorldPoint(vec(local)))
}

// Angle returns the body angle in radians.
func (b *Body) Angle() float64 { return b.body.GetAngle() }

// ApplyForce applies f at the center of mass, waking the body.
func (b *Body) ApplyForce(f trellis.Vec2) { b.body.ApplyForceToCenter(vec(f), true) }

// ApplyTorque applies t, waking the body.
func (b *Body) ApplyTorque(t float64) { b.body.ApplyTorque(t, true) }

// SetLinearDamping sets the linear damping.
func (b *Body) SetLinearDamping(d float64) { b.body.SetLinearDamping(d) }

// SetAngularDamping sets the angular damping.
func (b *Body) SetAngularDamping(d float64) { b.body.SetAngularDamping(d) }

// LinearVelocity returns the body's velocity.
func (b *Body) LinearVelocity() trellis.Vec2 { return fromVec(b.body.GetLinearVelocity()) }

func vec(v trellis.Vec2) b2.B2Vec2 { return b2.MakeB2Vec2(v.X, v.Y) }

func fromVec(v b2.B2Vec2) trellis.Vec2 { return trellis.Vec2{X: v.X, Y: v.Y} }
