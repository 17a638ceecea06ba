package ecs

import (
	"reflect"
	"strconv"
	"unsafe"
)

// MaxComponents is the maximum number of distinct component types a single
// World can register.
const MaxComponents = 256

// ComponentID is a dense index assigned to a component type at first
// registration. IDs are stable for the lifetime of the World and are used as
// array and bitset indices throughout the storage layer.
type ComponentID uint8

// ResourceID is the dense index assigned to a resource type at first
// insertion. Resource IDs share the access bitset space with components,
// offset by MaxComponents.
type ResourceID uint16

// ComponentInfo describes the memory layout of a registered component type.
// It is immutable after registration.
type ComponentInfo struct {
	ID    ComponentID
	Type  reflect.Type
	Size  uintptr
	Align uintptr

	// Drop, if non-nil, is invoked on a component's storage cell right before
	// the cell is overwritten or vacated. When nil the cell is zeroed instead,
	// which releases any pointers the component held.
	Drop func(unsafe.Pointer)

	// NonSend marks resources that must only be touched by exclusive systems.
	NonSend bool
}

// registry assigns dense IDs to component and resource types and records
// component layout. It is owned by exactly one World; independent worlds keep
// independent ID spaces, so they can coexist in one process.
type registry struct {
	infos  []*ComponentInfo
	byType map[reflect.Type]ComponentID

	resTypes  []reflect.Type
	resByType map[reflect.Type]ResourceID
}

func newRegistry() *registry {
	return &registry{
		byType:    make(map[reflect.Type]ComponentID),
		resByType: make(map[reflect.Type]ResourceID),
	}
}

// componentID returns the ID for t, registering it on first sight.
// Registration is idempotent.
func (r *registry) componentID(t reflect.Type) ComponentID {
	if id, ok := r.byType[t]; ok {
		return id
	}
	if len(r.infos) >= MaxComponents {
		panic("ecs: too many component types (max " + strconv.Itoa(MaxComponents) + ")")
	}
	id := ComponentID(len(r.infos))
	r.infos = append(r.infos, &ComponentInfo{
		ID:    id,
		Type:  t,
		Size:  t.Size(),
		Align: uintptr(t.Align()),
	})
	r.byType[t] = id
	return id
}

// lookup returns the ID for t without registering it.
func (r *registry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.byType[t]
	return id, ok
}

func (r *registry) info(id ComponentID) *ComponentInfo {
	return r.infos[id]
}

func (r *registry) componentCount() int {
	return len(r.infos)
}

// resourceID returns the dense ID for resource type t, assigning one on first
// sight.
func (r *registry) resourceID(t reflect.Type) ResourceID {
	if id, ok := r.resByType[t]; ok {
		return id
	}
	id := ResourceID(len(r.resTypes))
	r.resTypes = append(r.resTypes, t)
	r.resByType[t] = id
	return id
}

// accessBit maps a component ID into the shared access bitset space.
func componentBit(id ComponentID) int {
	return int(id)
}

// resourceBit maps a resource ID into the shared access bitset space, after
// all component bits.
func resourceBit(id ResourceID) int {
	return MaxComponents + int(id)
}

// RegisterComponent registers T with the world's registry and returns its ID.
// Repeated registration of the same type returns the same ID. Types are also
// registered implicitly on first use by Spawn and Insert; explicit
// registration exists so IDs can be captured up front.
func RegisterComponent[T any](w *World) ComponentID {
	return w.registry.componentID(reflect.TypeFor[T]())
}

// RegisterComponentDrop registers T with a custom drop hook, called with a
// pointer to the component's storage cell whenever a value of T is discarded.
// It returns a RegistrationConflictError if T was already registered with a
// different drop hook.
func RegisterComponentDrop[T any](w *World, drop func(*T)) (ComponentID, error) {
	t := reflect.TypeFor[T]()
	id := w.registry.componentID(t)
	info := w.registry.info(id)
	if info.Drop != nil {
		return id, &RegistrationConflictError{Type: t.String()}
	}
	info.Drop = func(p unsafe.Pointer) {
		drop((*T)(p))
	}
	return id, nil
}

// TypeOf returns the reflect.Type of T, for use with the type-keyed query and
// command APIs.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// componentValue normalizes a component passed as any: pointers are
// dereferenced, and disallowed kinds are rejected.
func componentValue(comp any) reflect.Value {
	v := reflect.ValueOf(comp)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Invalid:
		panic("ecs: components cannot be pointers, maps, channels, or functions")
	}
	return v
}
