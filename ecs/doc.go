// Package ecs bridges trellis scenes to a Donburi world.
//
// The store publishes every lifecycle event on LifecycleEventType and keeps
// one Donburi entity per live trellis entity, tagged with the Ref
// component, so ECS systems can query the scene graph's population.
package ecs
