package ecs

import (
	"reflect"
	"unsafe"
)

// resourceEntry holds one singleton value, stored as a heap allocation of its
// concrete type, with the same added/changed tick pair components carry.
type resourceEntry struct {
	id      ResourceID
	value   reflect.Value // pointer to the concrete type
	ptr     unsafe.Pointer
	added   Tick
	changed Tick
}

// resourceStore keeps singleton values outside the archetype tables, keyed by
// type through the registry's dense resource IDs.
type resourceStore struct {
	registry *registry
	entries  []*resourceEntry // dense by ResourceID, nil until inserted
}

func newResourceStore(reg *registry) *resourceStore {
	return &resourceStore{registry: reg}
}

func (s *resourceStore) entry(t reflect.Type) *resourceEntry {
	id := s.registry.resourceID(t)
	for int(id) >= len(s.entries) {
		s.entries = append(s.entries, nil)
	}
	return s.entries[id]
}

func (s *resourceStore) insert(t reflect.Type, v reflect.Value, tick Tick) *resourceEntry {
	id := s.registry.resourceID(t)
	for int(id) >= len(s.entries) {
		s.entries = append(s.entries, nil)
	}
	if e := s.entries[id]; e != nil {
		e.value.Elem().Set(v)
		e.changed = tick
		return e
	}
	boxed := reflect.New(t)
	boxed.Elem().Set(v)
	e := &resourceEntry{
		id:      id,
		value:   boxed,
		ptr:     boxed.UnsafePointer(),
		added:   tick,
		changed: tick,
	}
	s.entries[id] = e
	return e
}

func (s *resourceStore) count() int {
	n := 0
	for _, e := range s.entries {
		if e != nil {
			n++
		}
	}
	return n
}

func (s *resourceStore) clampTicks(current Tick) {
	for _, e := range s.entries {
		if e == nil {
			continue
		}
		e.added.clamp(current)
		e.changed.clamp(current)
	}
}

// InsertResource stores a singleton value of type T, replacing any previous
// value. Insertion over an existing resource stamps only the changed tick.
func InsertResource[T any](w *World, value T) {
	w.resources.insert(reflect.TypeFor[T](), reflect.ValueOf(value), w.tick)
}

// Resource returns a pointer to the T singleton for reading. ok is false if
// no T resource has been inserted.
func Resource[T any](w *World) (*T, bool) {
	e := w.resources.entry(reflect.TypeFor[T]())
	if e == nil {
		return nil, false
	}
	return (*T)(e.ptr), true
}

// ResourceMut is Resource with write intent: the changed tick is stamped when
// the pointer is handed out.
func ResourceMut[T any](w *World) (*T, bool) {
	e := w.resources.entry(reflect.TypeFor[T]())
	if e == nil {
		return nil, false
	}
	e.changed = w.tick
	return (*T)(e.ptr), true
}

// HasResource reports whether a T singleton has been inserted.
func HasResource[T any](w *World) bool {
	return w.resources.entry(reflect.TypeFor[T]()) != nil
}

// ResourceChangedSince reports whether the T singleton was written after the
// given tick, using the same wrapping window as component change detection.
func ResourceChangedSince[T any](w *World, since Tick) bool {
	e := w.resources.entry(reflect.TypeFor[T]())
	if e == nil {
		return false
	}
	return e.changed.newerThan(since, w.tick)
}

// Res provides cached access to a resource from inside a system, in the way
// a query field does for components. Declare it as a struct field on the
// system; the scheduler initializes it at registration time. If the resource
// is missing at first access it is created with its zero value.
type Res[T any] struct {
	world *World
	entry *resourceEntry
}

// Init binds the accessor to a world. Called by the scheduler during system
// registration; call it manually when using a system outside a scheduler.
func (r *Res[T]) Init(w *World) {
	r.world = w
	r.entry = nil
	r.refresh()

	if w.captureResource != nil {
		w.captureResource(r)
	}
}

func (r *Res[T]) refresh() {
	t := reflect.TypeFor[T]()
	e := r.world.resources.entry(t)
	if e == nil {
		var zero T
		e = r.world.resources.insert(t, reflect.ValueOf(zero), r.world.tick)
	}
	r.entry = e
}

// Get returns the resource for reading.
func (r *Res[T]) Get() *T {
	if r.entry == nil {
		r.refresh()
	}
	return (*T)(r.entry.ptr)
}

// Mut returns the resource with write intent, stamping its changed tick.
func (r *Res[T]) Mut() *T {
	if r.entry == nil {
		r.refresh()
	}
	r.entry.changed = r.world.tick
	return (*T)(r.entry.ptr)
}

// resourceType exposes T to the scheduler for access derivation.
func (r *Res[T]) resourceType() reflect.Type {
	return reflect.TypeFor[T]()
}
