package ecs

import "sync"

// Entity identifies an object in a World. The ID is recycled after despawn;
// the Generation is bumped on reuse so stale handles can be told apart from
// the slot's current occupant. The zero Entity is never alive.
type Entity struct {
	ID         uint32
	Generation uint32
}

// IsNil reports whether e is the zero Entity.
func (e Entity) IsNil() bool {
	return e.Generation == 0
}

// entityMeta is the live record for one ID slot: the slot's current
// generation plus the location of the occupant's row, if any. An alive entity
// with archetype < 0 is reserved (allocated through a command buffer) and has
// no row until the buffer is flushed.
type entityMeta struct {
	generation uint32
	archetype  archetypeID
	row        uint32
	alive      bool
}

// entityAllocator issues and recycles entity IDs and owns the sparse
// ID -> location table. Structural operations on it are serialized by the
// scheduler; only reserve is callable from concurrently running systems and
// is guarded by its own mutex.
type entityAllocator struct {
	metas []entityMeta
	free  []uint32

	reserveMu sync.Mutex
}

func newEntityAllocator() *entityAllocator {
	return &entityAllocator{}
}

// alloc returns a fresh or recycled entity. Recycled slots come back with a
// strictly greater generation than any previous occupant of the same ID.
func (a *entityAllocator) alloc() Entity {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		meta := &a.metas[id]
		meta.generation++
		meta.alive = true
		meta.archetype = -1
		return Entity{ID: id, Generation: meta.generation}
	}
	id := uint32(len(a.metas))
	a.metas = append(a.metas, entityMeta{generation: 1, archetype: -1, alive: true})
	return Entity{ID: id, Generation: 1}
}

// reserve is alloc behind a mutex, for command buffers filled during a
// parallel wave.
func (a *entityAllocator) reserve() Entity {
	a.reserveMu.Lock()
	defer a.reserveMu.Unlock()
	return a.alloc()
}

// release returns an entity's ID to the free list. It reports false if the
// entity is already dead or its generation is stale, so a double despawn is
// safe and visible to the caller.
func (a *entityAllocator) release(e Entity) bool {
	if !a.isAlive(e) {
		return false
	}
	meta := &a.metas[e.ID]
	meta.alive = false
	meta.archetype = -1
	a.free = append(a.free, e.ID)
	return true
}

func (a *entityAllocator) isAlive(e Entity) bool {
	if e.Generation == 0 || int(e.ID) >= len(a.metas) {
		return false
	}
	meta := &a.metas[e.ID]
	return meta.alive && meta.generation == e.Generation
}

// locate returns the archetype and row of a live entity. ok is false for dead
// entities and for reserved entities that have not been placed yet.
func (a *entityAllocator) locate(e Entity) (archetypeID, uint32, bool) {
	if !a.isAlive(e) {
		return -1, 0, false
	}
	meta := &a.metas[e.ID]
	if meta.archetype < 0 {
		return -1, 0, false
	}
	return meta.archetype, meta.row, true
}

func (a *entityAllocator) setLocation(id uint32, arch archetypeID, row uint32) {
	meta := &a.metas[id]
	meta.archetype = arch
	meta.row = row
}

func (a *entityAllocator) liveCount() int {
	count := 0
	for i := range a.metas {
		if a.metas[i].alive {
			count++
		}
	}
	return count
}
