package trellis

// BodyType selects how a physics body participates in the simulation.
type BodyType uint8

const (
	BodyStatic    BodyType = iota // never moves
	BodyDynamic                   // moved by forces and collisions
	BodyKinematic                 // moved only by its velocity
)

// BodyDef describes a body to create. Angle is in radians.
type BodyDef struct {
	Type           BodyType
	Position       Vec2
	Angle          float64
	LinearDamping  float64
	AngularDamping float64
}

// PhysicsBackend creates physics worlds. The box2d sub-package provides the
// default implementation.
type PhysicsBackend interface {
	NewWorld(gravity Vec2) (PhysicsWorld, error)
}

// PhysicsWorld is one rigid-body simulation. A Scene owns exactly one.
type PhysicsWorld interface {
	SetGravity(g Vec2)
	Gravity() Vec2
	// Step advances the simulation by dt seconds split into substeps.
	Step(dt float64, substeps int)
	CreateBody(def BodyDef) (PhysicsBody, error)
	DestroyBody(b PhysicsBody)
	// Destroy releases the world and every body still in it.
	Destroy()
}

// PhysicsBody is an opaque handle to a backend rigid body.
type PhysicsBody interface {
	// AttachBox adds a box collider with the given half extents.
	AttachBox(halfWidth, halfHeight float64)
	Position() Vec2
	// WorldPoint converts a point in body-local space to world space.
	WorldPoint(local Vec2) Vec2
	// Angle returns the body rotation in radians.
	Angle() float64
	ApplyForce(f Vec2)
	ApplyTorque(t float64)
	SetLinearDamping(d float64)
	SetAngularDamping(d float64)
}
