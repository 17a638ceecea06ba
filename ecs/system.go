package ecs

import "reflect"

// System is a unit of scheduled work. Implementations declare their data
// footprint through Query and Res struct fields (initialized by the scheduler
// at registration; the fields must be exported value fields for the binding
// to reach them, and exported pointer fields are rejected at Add) or through
// explicit Reads/Writes options, and do their work in Execute.
//
// A non-exclusive system must not perform structural operations on the world
// directly; it queues them on frame.Commands instead.
type System interface {
	Execute(frame *Frame) error
}

// Initializer is an optional interface for systems that need a setup step
// after their query fields are bound, typically to attach query filters.
// Queries and Res accessors created during Init join the system's access
// footprint, exactly as bound fields do.
type Initializer interface {
	Init(w *World)
}

// Frame carries the per-invocation execution context into a system.
type Frame struct {
	// DeltaTime is the wall-clock seconds since the previous pass.
	DeltaTime float64

	// Commands is the system's private deferred-mutation buffer, applied at
	// the next sync point.
	Commands *Commands

	// Access is the capability token for this invocation, scoped to the
	// system's declared footprint.
	Access *WorldAccess
}

// Access is a system's declared data footprint over the combined component
// and resource ID space. The scheduler compares footprints pairwise to decide
// which systems may share a wave.
type Access struct {
	reads     bitset
	writes    bitset
	exclusive bool
}

// conflictsWith reports whether two systems may not run concurrently:
// write/read, read/write, or write/write overlap, or either side demanding
// exclusive world access.
func (a *Access) conflictsWith(b *Access) bool {
	if a.exclusive || b.exclusive {
		return true
	}
	return a.writes.intersects(b.reads) ||
		a.reads.intersects(b.writes) ||
		a.writes.intersects(b.writes)
}

// systemQuery is implemented by *Query[T]; the scheduler discovers query
// fields through it.
type systemQuery interface {
	Init(w *World)
	markRun(t Tick)
	accessMasks() (required mask256, optional mask256)
}

// systemResource is implemented by *Res[T].
type systemResource interface {
	Init(w *World)
	resourceType() reflect.Type
}

// SystemOption configures a system at registration time.
type SystemOption func(*systemNode)

// Named overrides the system's name, which otherwise derives from its Go
// type. Names are the handles used by Before and After.
func Named(name string) SystemOption {
	return func(n *systemNode) { n.name = name }
}

// Before constrains the system to run in an earlier wave than the named
// systems.
func Before(names ...string) SystemOption {
	return func(n *systemNode) { n.before = append(n.before, names...) }
}

// After constrains the system to run in a later wave than the named systems.
func After(names ...string) SystemOption {
	return func(n *systemNode) { n.after = append(n.after, names...) }
}

// Exclusive marks the system as needing unconstrained access to all world
// data. Exclusive systems always run alone in their wave and may use
// frame.Access.World() for direct structural operations.
func Exclusive() SystemOption {
	return func(n *systemNode) { n.exclusive = true }
}

// Reads declares component types the system reads. When any Reads/Writes
// declaration is present, the system's query footprint is validated against
// it at compile time.
func Reads(types ...reflect.Type) SystemOption {
	return func(n *systemNode) { n.readTypes = append(n.readTypes, types...) }
}

// Writes declares component types the system writes.
func Writes(types ...reflect.Type) SystemOption {
	return func(n *systemNode) { n.writeTypes = append(n.writeTypes, types...) }
}

// ReadsResource declares resource types the system reads.
func ReadsResource(types ...reflect.Type) SystemOption {
	return func(n *systemNode) { n.readResTypes = append(n.readResTypes, types...) }
}

// WritesResource declares resource types the system writes.
func WritesResource(types ...reflect.Type) SystemOption {
	return func(n *systemNode) { n.writeResTypes = append(n.writeResTypes, types...) }
}
