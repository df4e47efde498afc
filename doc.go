// Package trellis is a small 2D scene graph kept in step with a rigid-body
// physics world.
//
// # Quick start
//
// A [Scene] owns a tree of [Entity] values and one physics world. A [Driver]
// runs frames against whichever scene is active:
//
//	scene, err := trellis.NewScene(box2d.NewBackend())
//	if err != nil { ... }
//	hero := trellis.NewSprite("hero", nil)
//	hero.AddComponent(trellis.NewDynamicBody())
//	scene.AddEntity(hero)
//
//	driver := trellis.NewDriver()
//	driver.Activate(scene)
//	ebitenbackend.Run(driver, ebitenbackend.RunConfig{Title: "demo", Width: 640, Height: 480})
//
// # Frames
//
// Every frame the driver updates the camera, begins the camera view, clears
// to [Scene.Background], updates [Input], steps the physics world, then
// walks the tree in pre-order. For each entity:
//
//  1. every component's Update runs, in attachment order
//  2. OnUpdate runs
//  3. the entity's movement since last frame is added to all descendants
//  4. if Visible, component drawers then OnDraw run
//
// Positions are absolute. A child follows its parent because the parent's
// per-frame movement is added to it, not because transforms compose.
//
// # Components and capabilities
//
// A [Component] may create physics state when its entity enters a scene and
// mutates the entity every frame. [DynamicBody] and [StaticBody] are the
// built-in physics components. Components that implement [Capable] are
// registered under capability tags for constant-time lookup:
//
//	body, ok := trellis.ComponentOf[*trellis.DynamicBody](e, trellis.CapDynamicBody)
//
// Components are attached to the physics world once, at insertion. Use
// [Scene.AttachComponent] for components added later.
//
// # Handles
//
// Scenes store entities in a generational arena. [EntityID] values stay
// safe to hold after removal: a stale ID simply stops resolving.
//
// # Backends
//
// Physics and presentation are interfaces. Sub-packages provide Box2D
// (trellis/box2d), Ebitengine (trellis/ebitenbackend) and a Donburi
// lifecycle bridge (trellis/ecs). [HeadlessPresenter] runs frames without a
// window.
package trellis
