package trellis

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Default scene settings.
const (
	DefaultSubsteps = 4
)

// DefaultGravity points down the screen (Y grows downward).
var DefaultGravity = Vec2{0, 10}

// Property names a scene-wide setting for SetProperty.
type Property uint8

const (
	PropertyGravity Property = iota // Vec2 gravity forwarded to the physics world
)

// SceneOption configures NewScene.
type SceneOption func(*sceneOptions)

type sceneOptions struct {
	gravity  Vec2
	substeps int
	store    EntityStore
	debug    bool
}

// WithGravity sets the initial gravity of the physics world.
func WithGravity(g Vec2) SceneOption {
	return func(o *sceneOptions) { o.gravity = g }
}

// WithSubsteps sets how many sub-steps each physics step is split into.
func WithSubsteps(n int) SceneOption {
	return func(o *sceneOptions) {
		if n > 0 {
			o.substeps = n
		}
	}
}

// WithEntityStore sets the lifecycle event sink.
func WithEntityStore(store EntityStore) SceneOption {
	return func(o *sceneOptions) { o.store = store }
}

// WithDebug enables tree depth and child count warnings.
func WithDebug(enabled bool) SceneOption {
	return func(o *sceneOptions) { o.debug = enabled }
}

// Scene owns the entity tree, one physics world, a camera, and the tweens
// running against its entities. All methods must be called from the thread
// that drives frames.
type Scene struct {
	// Background is the color the frame is cleared to.
	Background Color
	// Camera is the view the frame is drawn through.
	Camera *Camera

	world    PhysicsWorld
	substeps int
	store    EntityStore
	debug    bool

	entities arena
	roots    []EntityID
	tweens   []*TweenGroup

	// visitStack is reused across frames for the pre-order walk.
	visitStack []EntityID

	closed bool
}

// NewScene creates a scene with a fresh physics world from backend.
func NewScene(backend PhysicsBackend, opts ...SceneOption) (*Scene, error) {
	o := sceneOptions{gravity: DefaultGravity, substeps: DefaultSubsteps}
	for _, opt := range opts {
		opt(&o)
	}
	world, err := backend.NewWorld(o.gravity)
	if err != nil {
		return nil, fmt.Errorf("create physics world: %w", err)
	}
	return &Scene{
		Background: ColorWhite,
		Camera:     NewCamera(),
		world:      world,
		substeps:   o.substeps,
		store:      o.store,
		debug:      o.debug,
	}, nil
}

// World returns the scene's physics world.
func (s *Scene) World() PhysicsWorld { return s.world }

// SetEntityStore sets the optional lifecycle event sink.
func (s *Scene) SetEntityStore(store EntityStore) { s.store = store }

// SetDebugMode enables or disables tree depth and child count warnings.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// Closed reports whether Close has run.
func (s *Scene) Closed() bool { return s.closed }

// --- Tree ---

// AddEntity inserts e as a root. OnStart runs once, then every component
// attached at this moment is attached to the physics world. If attaching
// fails the entity is released again and the error is returned.
//
// Panics if e already belongs to a scene.
func (s *Scene) AddEntity(e *Entity) (EntityID, error) {
	if err := s.checkInsert(e); err != nil {
		return NoEntity, err
	}
	id := s.entities.insert(e)
	e.id = id
	e.scene = s
	e.parent = NoEntity
	s.roots = append(s.roots, id)
	if err := s.start(e); err != nil {
		return NoEntity, err
	}
	return id, nil
}

// AddChild inserts e under parent. The child starts and attaches exactly as
// AddEntity does. Positions are absolute, so e keeps its current Position.
func (s *Scene) AddChild(parent EntityID, e *Entity) (EntityID, error) {
	if err := s.checkInsert(e); err != nil {
		return NoEntity, err
	}
	p := s.entities.get(parent)
	if p == nil {
		return NoEntity, fmt.Errorf("add child %q: %w", e.Name, ErrStaleEntity)
	}
	id := s.entities.insert(e)
	e.id = id
	e.scene = s
	e.parent = parent
	p.children = append(p.children, id)
	if s.debug {
		s.debugCheckTreeDepth(e)
		s.debugCheckChildCount(p)
	}
	if err := s.start(e); err != nil {
		return NoEntity, err
	}
	return id, nil
}

func (s *Scene) checkInsert(e *Entity) error {
	if e == nil {
		panic("trellis: cannot add nil entity")
	}
	if e.scene != nil || e.released {
		panic("trellis: entity " + e.Name + " was already inserted into a scene")
	}
	if s.closed {
		return ErrSceneClosed
	}
	return nil
}

// start runs the one-time insertion hooks.
func (s *Scene) start(e *Entity) error {
	e.started = true
	if e.OnStart != nil {
		e.OnStart(e)
	}
	// Placement done before and during OnStart is not movement.
	e.prevPosition = e.Position
	for _, c := range e.components {
		if err := c.AttachPhysics(s.world, e); err != nil {
			attachErr := fmt.Errorf("attach %q to physics: %w", e.Name, err)
			return errors.Join(attachErr, s.Remove(e.id))
		}
	}
	logger.Debug("entity started", zap.String("entity", e.Name), zap.Uint64("id", uint64(e.id)))
	s.emit(EventEntityStarted, e)
	return nil
}

// AttachComponent adds c to a live entity and attaches it to the physics
// world immediately. Components added with Entity.AddComponent after
// insertion are never attached automatically. If attaching fails, c is not
// added.
func (s *Scene) AttachComponent(id EntityID, c Component) error {
	e := s.entities.get(id)
	if e == nil {
		return fmt.Errorf("attach component: %w", ErrStaleEntity)
	}
	if c == nil {
		panic("trellis: cannot attach nil component")
	}
	if err := c.AttachPhysics(s.world, e); err != nil {
		return fmt.Errorf("attach %q to physics: %w", e.Name, err)
	}
	e.AddComponent(c)
	return nil
}

// Entity resolves id. The second result is false for stale or zero IDs.
func (s *Scene) Entity(id EntityID) (*Entity, bool) {
	e := s.entities.get(id)
	return e, e != nil
}

// Roots returns the root handles in insertion order. The returned slice
// MUST NOT be mutated by the caller.
func (s *Scene) Roots() []EntityID { return s.roots }

// Children returns the child handles of id in insertion order, or nil for a
// stale id. The returned slice MUST NOT be mutated by the caller.
func (s *Scene) Children(id EntityID) []EntityID {
	if e := s.entities.get(id); e != nil {
		return e.children
	}
	return nil
}

// Len returns the number of live entities, roots and descendants.
func (s *Scene) Len() int { return s.entities.len() }

// Reparent moves id under newParent, or makes it a root when newParent is
// NoEntity. The entity keeps its absolute position.
// Panics if the move would create a cycle.
func (s *Scene) Reparent(id, newParent EntityID) error {
	e := s.entities.get(id)
	if e == nil {
		return fmt.Errorf("reparent: %w", ErrStaleEntity)
	}
	var p *Entity
	if newParent != NoEntity {
		p = s.entities.get(newParent)
		if p == nil {
			return fmt.Errorf("reparent %q: %w", e.Name, ErrStaleEntity)
		}
		for a := p; a != nil; a = s.entities.get(a.parent) {
			if a == e {
				panic("trellis: reparenting would create a cycle")
			}
		}
	}
	s.detach(e)
	e.parent = newParent
	if p == nil {
		s.roots = append(s.roots, id)
	} else {
		p.children = append(p.children, id)
	}
	return nil
}

// detach removes e from its parent's child list or from the roots.
func (s *Scene) detach(e *Entity) {
	if p := s.entities.get(e.parent); p != nil {
		p.children = removeID(p.children, e.id)
	} else {
		s.roots = removeID(s.roots, e.id)
	}
	e.parent = NoEntity
}

func removeID(ids []EntityID, id EntityID) []EntityID {
	for i, c := range ids {
		if c == id {
			copy(ids[i:], ids[i+1:])
			ids[len(ids)-1] = NoEntity
			return ids[:len(ids)-1]
		}
	}
	return ids
}

// Remove detaches id and tears down it and its subtree. Teardown is best
// effort: every entity is released even if some hooks fail, and all
// failures are returned joined.
func (s *Scene) Remove(id EntityID) error {
	e := s.entities.get(id)
	if e == nil {
		return fmt.Errorf("remove: %w", ErrStaleEntity)
	}
	s.detach(e)
	return s.release(e)
}

// release tears down e's subtree, children first.
func (s *Scene) release(e *Entity) error {
	var errs []error
	for _, cid := range e.children {
		if child := s.entities.get(cid); child != nil {
			errs = append(errs, s.release(child))
		}
	}
	e.children = nil
	for _, c := range e.components {
		if r, ok := c.(Releaser); ok {
			if err := r.Release(); err != nil {
				errs = append(errs, fmt.Errorf("release component of %q: %w", e.Name, err))
			}
		}
	}
	if e.OnRelease != nil {
		if err := e.OnRelease(e); err != nil {
			errs = append(errs, fmt.Errorf("release %q: %w", e.Name, err))
		}
	}
	s.emit(EventEntityReleased, e)
	s.entities.remove(e.id)
	e.released = true
	e.scene = nil
	e.parent = NoEntity
	logger.Debug("entity released", zap.String("entity", e.Name))
	return errors.Join(errs...)
}

// --- Properties ---

// SetProperty changes a scene-wide setting. PropertyGravity takes a Vec2.
// Unknown properties and mistyped values fail with ErrUnknownProperty.
func (s *Scene) SetProperty(prop Property, value any) error {
	switch prop {
	case PropertyGravity:
		g, ok := value.(Vec2)
		if !ok {
			return fmt.Errorf("gravity wants Vec2, got %T: %w", value, ErrUnknownProperty)
		}
		s.world.SetGravity(g)
		return nil
	default:
		return fmt.Errorf("property %d: %w", prop, ErrUnknownProperty)
	}
}

// --- Tweens ---

// AddTween runs g every frame, before entity updates, until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

func (s *Scene) updateTweens(dt float32) {
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live
}

// --- Frame ---

// stepPhysics advances the physics world by dt.
func (s *Scene) stepPhysics(dt float64) {
	s.world.Step(dt, s.substeps)
}

// updateEntities runs the per-entity frame protocol over the whole tree in
// pre-order. For each entity: components update, OnUpdate runs, movement is
// propagated to descendants, then the entity draws if visible. Entities
// removed during the walk are skipped. A child inserted during the walk
// under the entity being visited, or under one not yet reached, is visited
// this frame; new roots and children of entities already walked wait for
// the next frame.
func (s *Scene) updateEntities(dt float64, r Renderer) {
	s.updateTweens(float32(dt))

	stack := s.visitStack[:0]
	for i := len(s.roots) - 1; i >= 0; i-- {
		stack = append(stack, s.roots[i])
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e := s.entities.get(id)
		if e == nil {
			continue
		}
		s.visit(e, dt, r)
		for i := len(e.children) - 1; i >= 0; i-- {
			stack = append(stack, e.children[i])
		}
	}
	s.visitStack = stack[:0]
}

func (s *Scene) visit(e *Entity, dt float64, r Renderer) {
	e.updateComponents()
	if e.released {
		return
	}
	if e.OnUpdate != nil {
		e.OnUpdate(e, dt)
	}
	if e.released {
		return
	}
	s.propagate(e)
	if e.Visible && r != nil {
		e.draw(r)
	}
}

// Step runs one frame without a camera or clear: physics first, then the
// entity protocol. Renderer may be nil to skip drawing.
func (s *Scene) Step(dt float64, r Renderer) {
	s.stepPhysics(dt)
	s.updateEntities(dt, r)
}

// --- Teardown ---

// Close releases every entity, then destroys the physics world. It is best
// effort and idempotent; failures are returned joined.
func (s *Scene) Close() error {
	if s.closed {
		return nil
	}
	var errs []error
	roots := append([]EntityID(nil), s.roots...)
	for _, id := range roots {
		if e := s.entities.get(id); e != nil {
			errs = append(errs, s.release(e))
		}
	}
	s.roots = nil
	s.tweens = nil
	s.world.Destroy()
	s.closed = true
	s.emit(EventSceneClosed, nil)
	err := errors.Join(errs...)
	if err != nil {
		logger.Warn("scene teardown finished with errors", zap.Error(err))
	}
	return err
}
