package ecs

import (
	"github.com/kamstrup/intmap"
)

// archetypeID indexes into the archetype arena. -1 means "no archetype".
type archetypeID int32

// archetype groups all entities that share the exact same component-type set,
// backed by one columnar table. Archetypes are created lazily the first time
// a component combination is observed and live for the lifetime of the World;
// they are never merged or freed, even when permanently empty. That is a
// deliberate space-for-simplicity tradeoff: archetype IDs stay stable and
// query caches never see an archetype disappear.
type archetype struct {
	id           archetypeID
	mask         mask256
	componentIDs []ComponentID // sorted ascending
	slots        [MaxComponents]int16
	table        *table
}

// column returns the column holding component id, or nil if this archetype
// does not have it.
func (a *archetype) column(id ComponentID) *column {
	slot := a.slots[id]
	if slot < 0 {
		return nil
	}
	return a.table.columns[slot]
}

func (a *archetype) hasComponent(id ComponentID) bool {
	return a.slots[id] >= 0
}

const initialTableCapacity = 64

// archetypeStore owns the archetype arena. Lookup by component set is a
// single map probe on the comparable mask; add/remove transitions are cached
// in an edge table keyed by (archetype, component, direction) so repeated
// moves skip the set arithmetic.
type archetypeStore struct {
	registry   *registry
	archetypes []*archetype
	byMask     map[mask256]archetypeID
	edges      *intmap.Map[uint64, archetypeID]
}

func newArchetypeStore(reg *registry) *archetypeStore {
	s := &archetypeStore{
		registry: reg,
		byMask:   make(map[mask256]archetypeID),
		edges:    intmap.New[uint64, archetypeID](64),
	}
	// The empty archetype holds component-less entities and always has ID 0.
	s.getOrCreate(nil)
	return s
}

func (s *archetypeStore) get(id archetypeID) *archetype {
	return s.archetypes[id]
}

func (s *archetypeStore) count() int {
	return len(s.archetypes)
}

// getOrCreate returns the archetype for the given sorted component set,
// creating it with an empty table on first use.
func (s *archetypeStore) getOrCreate(ids []ComponentID) *archetype {
	mask := maskOf(ids)
	if id, ok := s.byMask[mask]; ok {
		return s.archetypes[id]
	}

	a := &archetype{
		id:           archetypeID(len(s.archetypes)),
		mask:         mask,
		componentIDs: append([]ComponentID(nil), ids...),
	}
	for i := range a.slots {
		a.slots[i] = -1
	}
	infos := make([]*ComponentInfo, len(ids))
	for i, cid := range ids {
		a.slots[cid] = int16(i)
		infos[i] = s.registry.info(cid)
	}
	a.table = newTable(infos, initialTableCapacity)

	s.archetypes = append(s.archetypes, a)
	s.byMask[mask] = a.id
	return a
}

// edge keys pack (archetype, component, direction) into one uint64 for the
// intmap: id<<9 | component<<1 | direction.
func edgeKey(from archetypeID, c ComponentID, add bool) uint64 {
	key := uint64(from)<<9 | uint64(c)<<1
	if add {
		key |= 1
	}
	return key
}

// edgeAdd returns the archetype reached from `from` by adding component c.
func (s *archetypeStore) edgeAdd(from *archetype, c ComponentID) *archetype {
	key := edgeKey(from.id, c, true)
	if id, ok := s.edges.Get(key); ok {
		return s.archetypes[id]
	}

	ids := make([]ComponentID, 0, len(from.componentIDs)+1)
	inserted := false
	for _, cid := range from.componentIDs {
		if !inserted && c < cid {
			ids = append(ids, c)
			inserted = true
		}
		ids = append(ids, cid)
	}
	if !inserted {
		ids = append(ids, c)
	}

	to := s.getOrCreate(ids)
	s.edges.Put(key, to.id)
	return to
}

// edgeRemove returns the archetype reached from `from` by removing component c.
func (s *archetypeStore) edgeRemove(from *archetype, c ComponentID) *archetype {
	key := edgeKey(from.id, c, false)
	if id, ok := s.edges.Get(key); ok {
		return s.archetypes[id]
	}

	ids := make([]ComponentID, 0, len(from.componentIDs)-1)
	for _, cid := range from.componentIDs {
		if cid != c {
			ids = append(ids, cid)
		}
	}

	to := s.getOrCreate(ids)
	s.edges.Put(key, to.id)
	return to
}
