package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for trellis lifecycle events.
// Subscribe to it in your ECS systems and drain it with ProcessEvents.
var LifecycleEventType = events.NewEventType[trellis.LifecycleEvent]()

// RefData links a Donburi entity to the trellis entity it mirrors.
type RefData struct {
	ID   trellis.EntityID
	Name string
}

// Ref is the component carried by mirror entities.
var Ref = donburi.NewComponentType[RefData]()

// DonburiStore is an EntityStore backed by a Donburi world.
type DonburiStore struct {
	world   donburi.World
	mirrors map[trellis.EntityID]donburi.Entity
}

// NewDonburiStore creates a store publishing into world.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:   world,
		mirrors: make(map[trellis.EntityID]donburi.Entity),
	}
}

// EmitEvent publishes event and keeps the mirror entities in step.
func (s *DonburiStore) EmitEvent(event trellis.LifecycleEvent) {
	switch event.Type {
	case trellis.EventEntityStarted:
		if _, ok := s.mirrors[event.EntityID]; !ok {
			ent := s.world.Create(Ref)
			Ref.SetValue(s.world.Entry(ent), RefData{ID: event.EntityID, Name: event.Name})
			s.mirrors[event.EntityID] = ent
		}
	case trellis.EventEntityReleased:
		if ent, ok := s.mirrors[event.EntityID]; ok {
			if s.world.Valid(ent) {
				s.world.Remove(ent)
			}
			delete(s.mirrors, event.EntityID)
		}
	}
	LifecycleEventType.Publish(s.world, event)
}

// Mirror returns the Donburi entity standing for id.
func (s *DonburiStore) Mirror(id trellis.EntityID) (donburi.Entity, bool) {
	ent, ok := s.mirrors[id]
	return ent, ok
}

// Len returns the number of mirrored entities.
func (s *DonburiStore) Len() int { return len(s.mirrors) }
