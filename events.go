package trellis

// EventType identifies a kind of lifecycle event.
type EventType uint8

const (
	EventEntityStarted  EventType = iota // OnStart ran and components were attached
	EventEntityReleased                  // the entity was torn down
	EventSceneActivated                  // a driver made the scene current
	EventSceneClosed                     // the scene released its physics world
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventEntityStarted:
		return "entity-started"
	case EventEntityReleased:
		return "entity-released"
	case EventSceneActivated:
		return "scene-activated"
	case EventSceneClosed:
		return "scene-closed"
	default:
		return "unknown"
	}
}

// LifecycleEvent carries lifecycle data for an EntityStore.
type LifecycleEvent struct {
	Type     EventType
	EntityID EntityID
	Name     string
}

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, lifecycle events are forwarded to it.
type EntityStore interface {
	EmitEvent(event LifecycleEvent)
}

func (s *Scene) emit(t EventType, e *Entity) {
	if s.store == nil {
		return
	}
	ev := LifecycleEvent{Type: t}
	if e != nil {
		ev.EntityID = e.id
		ev.Name = e.Name
	}
	s.store.EmitEvent(ev)
}
