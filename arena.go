package trellis

// EntityID is a stable handle to an entity stored in a Scene. It packs the
// arena slot index (low 32 bits) and the slot generation (high 32 bits), so
// an ID held after its entity was released never resolves to a newer entity
// reusing the same slot.
type EntityID uint64

// NoEntity is the zero EntityID. It never resolves.
const NoEntity EntityID = 0

func makeEntityID(index, gen uint32) EntityID {
	return EntityID(uint64(gen)<<32 | uint64(index))
}

func (id EntityID) index() uint32      { return uint32(id) }
func (id EntityID) generation() uint32 { return uint32(id >> 32) }

type arenaSlot struct {
	gen    uint32
	entity *Entity
}

// arena stores entities in reusable slots. Generations start at 1 so that
// NoEntity can never match a live slot.
type arena struct {
	slots []arenaSlot
	free  []uint32
	live  int
}

func (a *arena) insert(e *Entity) EntityID {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, arenaSlot{})
		idx = uint32(len(a.slots) - 1)
	}
	slot := &a.slots[idx]
	slot.gen++
	if slot.gen == 0 {
		slot.gen = 1
	}
	slot.entity = e
	a.live++
	return makeEntityID(idx, slot.gen)
}

func (a *arena) get(id EntityID) *Entity {
	idx := id.index()
	if id == NoEntity || int(idx) >= len(a.slots) {
		return nil
	}
	slot := &a.slots[idx]
	if slot.gen != id.generation() {
		return nil
	}
	return slot.entity
}

func (a *arena) remove(id EntityID) bool {
	if a.get(id) == nil {
		return false
	}
	idx := id.index()
	a.slots[idx].entity = nil
	a.slots[idx].gen++
	a.free = append(a.free, idx)
	a.live--
	return true
}

func (a *arena) len() int { return a.live }
