package ecs

import (
	"reflect"
	"sort"
	"unsafe"
)

// World owns one complete ECS instance: the entity allocator, component
// registry, archetype store, resources, and the change-detection clock.
// Multiple worlds can coexist in a process; they share nothing.
//
// Structural operations (Spawn, Despawn, Insert, Remove) are not safe for
// concurrent use. Inside a running schedule they must go through the
// Commands buffer, which applies them at the next sync point.
type World struct {
	registry  *registry
	entities  *entityAllocator
	store     *archetypeStore
	resources *resourceStore
	tick      Tick

	// Set by the scheduler for the duration of a system's Init call, so
	// queries and resource accessors created there join the system's access
	// footprint.
	captureQuery    func(systemQuery)
	captureResource func(systemResource)
}

// NewWorld creates an empty world. The clock starts at 1 so rows stamped
// before the first pass still compare as newer than a query's zero last-run
// point.
func NewWorld() *World {
	reg := newRegistry()
	return &World{
		registry:  reg,
		entities:  newEntityAllocator(),
		store:     newArchetypeStore(reg),
		resources: newResourceStore(reg),
		tick:      1,
	}
}

// Tick returns the current change-detection clock value.
func (w *World) Tick() Tick {
	return w.tick
}

// AdvanceTick increments the clock and returns the new value. The scheduler
// does this once per pass; manual use is only needed when driving the world
// without a scheduler.
func (w *World) AdvanceTick() Tick {
	w.tick++
	return w.tick
}

// CheckTicks clamps change-detection stamps that have aged beyond the
// comparable half-window. The scheduler calls this periodically; it only
// matters for processes that run for billions of passes.
func (w *World) CheckTicks() {
	for _, a := range w.store.archetypes {
		a.table.clampTicks(w.tick)
	}
	w.resources.clampTicks(w.tick)
}

// Spawn creates a new entity holding the given components and returns its
// handle. Components may be passed by value or by pointer. Spawning with no
// components is allowed; the entity lands in the empty archetype.
func (w *World) Spawn(components ...any) Entity {
	e := w.entities.alloc()
	w.placeEntity(e, components)
	return e
}

// placeEntity inserts a rowless (fresh or reserved) entity into the archetype
// matching the given component set.
func (w *World) placeEntity(e Entity, components []any) {
	values := make([]reflect.Value, len(components))
	ids := make([]ComponentID, len(components))
	for i, comp := range components {
		v := componentValue(comp)
		values[i] = v
		ids[i] = w.registry.componentID(v.Type())
	}

	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return ids[order[i]] < ids[order[j]] })

	sortedIDs := make([]ComponentID, 0, len(ids))
	for _, idx := range order {
		id := ids[idx]
		if len(sortedIDs) > 0 && sortedIDs[len(sortedIDs)-1] == id {
			continue // duplicate type in the spawn list, last write wins below
		}
		sortedIDs = append(sortedIDs, id)
	}

	a := w.store.getOrCreate(sortedIDs)
	row := len(a.table.entities)
	for _, idx := range order {
		col := a.column(ids[idx])
		if col.length > row {
			col.set(row, values[idx], w.tick)
			continue
		}
		col.push(values[idx], w.tick)
	}
	a.table.entities = append(a.table.entities, e)
	w.entities.setLocation(e.ID, a.id, uint32(row))
}

// Despawn removes an entity and all its components, returning false if the
// entity is not alive (a stale handle or a double despawn).
func (w *World) Despawn(e Entity) bool {
	arch, row, ok := w.entities.locate(e)
	if !ok {
		// A reserved entity has no row but still owns its ID.
		return w.entities.release(e)
	}
	a := w.store.get(arch)
	moved, hasMoved := a.table.swapRemove(int(row))
	if hasMoved {
		w.entities.setLocation(moved.ID, arch, row)
	}
	return w.entities.release(e)
}

// IsAlive reports whether e refers to a live entity.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// ArchetypeCount returns the number of archetypes created so far. Queries use
// it to detect that their archetype cache is stale.
func (w *World) ArchetypeCount() int {
	return w.store.count()
}

// Insert attaches a component to an entity. If the entity already has a
// component of type T the value is overwritten in place without a structural
// move, and only the changed tick is stamped. Returns ErrEntityNotFound for
// dead entities.
func Insert[T any](w *World, e Entity, value T) error {
	return w.insertDynamic(e, value)
}

// Remove detaches component T from an entity, returning the removed value.
// ok is false when the entity is dead or does not have T; neither case
// modifies the world.
func Remove[T any](w *World, e Entity) (T, bool) {
	var zero T
	v, ok := w.removeDynamic(e, reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	return v.Interface().(T), true
}

// Get returns a pointer to e's component of type T for reading. The pointer
// is valid until the next structural operation touching e's archetype.
func Get[T any](w *World, e Entity) (*T, bool) {
	ptr, ok := w.componentPtr(e, reflect.TypeFor[T](), false)
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

// GetMut is Get with write intent: the component's changed tick is stamped at
// the moment the pointer is handed out, not when it is written through.
func GetMut[T any](w *World, e Entity) (*T, bool) {
	ptr, ok := w.componentPtr(e, reflect.TypeFor[T](), true)
	if !ok {
		return nil, false
	}
	return (*T)(ptr), true
}

// Has reports whether e currently has a component of type T.
func Has[T any](w *World, e Entity) bool {
	arch, _, ok := w.entities.locate(e)
	if !ok {
		return false
	}
	id, registered := w.registry.lookup(reflect.TypeFor[T]())
	if !registered {
		return false
	}
	return w.store.get(arch).hasComponent(id)
}

func (w *World) insertDynamic(e Entity, comp any) error {
	if !w.entities.isAlive(e) {
		return ErrEntityNotFound
	}
	v := componentValue(comp)
	id := w.registry.componentID(v.Type())

	arch, row, located := w.entities.locate(e)
	if !located {
		// Reserved entity: its first insert places it into an archetype.
		w.placeEntity(e, []any{comp})
		return nil
	}

	from := w.store.get(arch)
	if col := from.column(id); col != nil {
		col.set(int(row), v, w.tick)
		return nil
	}

	to := w.store.edgeAdd(from, id)
	w.moveEntity(e, from, int(row), to, id, v)
	return nil
}

func (w *World) removeDynamic(e Entity, t reflect.Type) (reflect.Value, bool) {
	arch, row, ok := w.entities.locate(e)
	if !ok {
		return reflect.Value{}, false
	}
	id, registered := w.registry.lookup(t)
	if !registered {
		return reflect.Value{}, false
	}
	from := w.store.get(arch)
	if !from.hasComponent(id) {
		return reflect.Value{}, false
	}

	to := w.store.edgeRemove(from, id)
	removed := w.moveEntityRemove(e, from, int(row), to, id)
	return removed, true
}

// moveEntity relocates e from one archetype to another while adding component
// addedID. Columns common to both archetypes are copied row-wise with their
// ticks preserved; the added column is stamped with the current tick. The
// entity's new location is published only after every column write has
// completed, so a mid-move panic can never leave the location pointing at a
// row without the entity's data.
func (w *World) moveEntity(e Entity, from *archetype, fromRow int, to *archetype, addedID ComponentID, addedVal reflect.Value) {
	newRow := len(to.table.entities)
	for i, cid := range to.componentIDs {
		dst := to.table.columns[i]
		if cid == addedID {
			dst.push(addedVal, w.tick)
			continue
		}
		dst.pushFrom(from.column(cid), fromRow)
	}
	to.table.entities = append(to.table.entities, e)

	moved, hasMoved := from.table.swapRemoveMoved(fromRow)
	if hasMoved {
		w.entities.setLocation(moved.ID, from.id, uint32(fromRow))
	}
	w.entities.setLocation(e.ID, to.id, uint32(newRow))
}

// moveEntityRemove relocates e while detaching component removedID, returning
// the removed value. Ownership of the removed value transfers to the caller,
// so its drop hook does not fire. Location bookkeeping follows the same
// publish-last rule as moveEntity.
func (w *World) moveEntityRemove(e Entity, from *archetype, fromRow int, to *archetype, removedID ComponentID) reflect.Value {
	removedCol := from.column(removedID)
	removed := reflect.New(removedCol.info.Type).Elem()
	removed.Set(removedCol.value(fromRow))

	newRow := len(to.table.entities)
	for i, cid := range to.componentIDs {
		to.table.columns[i].pushFrom(from.column(cid), fromRow)
	}
	to.table.entities = append(to.table.entities, e)

	moved, hasMoved := from.table.swapRemoveMoved(fromRow)
	if hasMoved {
		w.entities.setLocation(moved.ID, from.id, uint32(fromRow))
	}
	w.entities.setLocation(e.ID, to.id, uint32(newRow))
	return removed
}

func (w *World) componentPtr(e Entity, t reflect.Type, mut bool) (ptr unsafe.Pointer, ok bool) {
	arch, row, located := w.entities.locate(e)
	if !located {
		return nil, false
	}
	id, registered := w.registry.lookup(t)
	if !registered {
		return nil, false
	}
	col := w.store.get(arch).column(id)
	if col == nil {
		return nil, false
	}
	if mut {
		col.stampChanged(int(row), w.tick)
	}
	return col.cellPtr(int(row)), true
}

// WorldStats is a point-in-time summary of storage occupancy.
type WorldStats struct {
	Entities   int
	Archetypes int
	Components int
	Resources  int
}

// Stats collects storage occupancy counters, used by the stress report and
// handy when debugging archetype fragmentation.
func (w *World) Stats() WorldStats {
	return WorldStats{
		Entities:   w.entities.liveCount(),
		Archetypes: w.store.count(),
		Components: w.registry.componentCount(),
		Resources:  w.resources.count(),
	}
}
