package ecs

import "reflect"

// WorldAccess is the capability token handed to a system invocation. It
// carries the read/write footprint the scheduler granted; the static conflict
// check has already proven that footprint disjoint from everything else in
// the wave, so accesses through the token need no locking.
type WorldAccess struct {
	world  *World
	access *Access
}

// World returns the full world. Only exclusive systems hold this capability;
// any other caller panics, since handing out the world to a system running
// concurrently with others would defeat the conflict analysis.
func (wa *WorldAccess) World() *World {
	if !wa.access.exclusive {
		panic("ecs: non-exclusive system requested full world access")
	}
	return wa.world
}

// Tick returns the change-detection tick in force for the current wave.
func (wa *WorldAccess) Tick() Tick {
	return wa.world.tick
}

// CanRead reports whether the token grants read access to the component type.
func (wa *WorldAccess) CanRead(t reflect.Type) bool {
	if wa.access.exclusive {
		return true
	}
	id, ok := wa.world.registry.lookup(t)
	if !ok {
		return false
	}
	bit := componentBit(id)
	return wa.access.reads.has(bit) || wa.access.writes.has(bit)
}

// CanWrite reports whether the token grants write access to the component
// type.
func (wa *WorldAccess) CanWrite(t reflect.Type) bool {
	if wa.access.exclusive {
		return true
	}
	id, ok := wa.world.registry.lookup(t)
	if !ok {
		return false
	}
	return wa.access.writes.has(componentBit(id))
}

// CanReadResource reports whether the token grants read access to the
// resource type.
func (wa *WorldAccess) CanReadResource(t reflect.Type) bool {
	if wa.access.exclusive {
		return true
	}
	bit := resourceBit(wa.world.registry.resourceID(t))
	return wa.access.reads.has(bit) || wa.access.writes.has(bit)
}

// CanWriteResource reports whether the token grants write access to the
// resource type.
func (wa *WorldAccess) CanWriteResource(t reflect.Type) bool {
	if wa.access.exclusive {
		return true
	}
	return wa.access.writes.has(resourceBit(wa.world.registry.resourceID(t)))
}
