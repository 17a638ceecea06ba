package ecs

import (
	"iter"
	"reflect"
	"strconv"
	"unsafe"
)

// Query matches entities whose component set satisfies a signature and
// iterates their rows. The type parameter T must be a struct whose fields are
// pointers to component types; each field is fetched per matched row. Fields
// are required unless tagged `ecs:"optional"`, in which case they are nil for
// rows that lack the component.
//
// A query evaluates its signature once per archetype, not once per entity:
// the set of matching archetypes is cached and refreshed only when the world
// has created new archetypes since the last iteration.
//
// Declare queries as value fields on a system struct and the scheduler
// initializes them at registration; standalone use goes through NewQuery. A
// query a system builds with NewQuery inside its Init is captured into the
// system's access footprint; one built anywhere else is invisible to the
// scheduler's conflict analysis and must be covered by explicit Reads/Writes
// declarations.
type Query[T any] struct {
	world  *World
	fields []queryField

	requiredMask  mask256
	withoutMask   mask256
	addedFilter   []ComponentID
	changedFilter []ComponentID

	matched            []*archetype
	lastArchetypeCount int

	lastRun Tick
}

type queryField struct {
	typ      reflect.Type
	id       ComponentID
	offset   uintptr
	optional bool
}

// NewQuery creates and initializes a query against w.
func NewQuery[T any](w *World) *Query[T] {
	q := &Query[T]{}
	q.Init(w)
	return q
}

// Init binds the query to a world and parses the view struct. The scheduler
// calls this for zero-value Query fields during system registration.
func (q *Query[T]) Init(w *World) {
	var zero T
	structType := reflect.TypeOf(zero)
	if structType == nil || structType.Kind() != reflect.Struct {
		panic("ecs: Query type parameter must be a struct")
	}

	q.world = w
	q.fields = q.fields[:0]
	q.requiredMask = mask256{}
	q.withoutMask = mask256{}
	q.addedFilter = nil
	q.changedFilter = nil
	q.matched = nil
	q.lastArchetypeCount = -1
	q.lastRun = 0

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: Query struct fields must be pointers to component types")
		}
		componentType := field.Type.Elem()

		optional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				optional = true
			default:
				panic("ecs: invalid ecs tag value " + strconv.Quote(tag))
			}
		}

		id := w.registry.componentID(componentType)
		q.fields = append(q.fields, queryField{
			typ:      componentType,
			id:       id,
			offset:   field.Offset,
			optional: optional,
		})
		if !optional {
			q.requiredMask.set(id)
		}
	}

	if w.captureQuery != nil {
		w.captureQuery(q)
	}
}

// refreshArchetypes rebuilds the matched-archetype cache if the world has
// grown new archetypes since the last iteration.
func (q *Query[T]) refreshArchetypes() {
	count := q.world.store.count()
	if count == q.lastArchetypeCount {
		return
	}
	q.matched = q.matched[:0]
	for _, a := range q.world.store.archetypes {
		if q.archetypeMatches(a) {
			q.matched = append(q.matched, a)
		}
	}
	q.lastArchetypeCount = count
}

func (q *Query[T]) archetypeMatches(a *archetype) bool {
	return a.mask.containsAll(q.requiredMask) && !a.mask.intersects(q.withoutMask)
}

// Iter returns a restartable iterator over (entity, row) pairs with read
// intent. Rows are visited archetype by archetype in archetype-creation
// order, then in table row order.
func (q *Query[T]) Iter() iter.Seq2[Entity, T] {
	return q.iterate(false)
}

// IterMut is Iter with write intent: every fetched component's changed tick
// is stamped as the row is yielded, whether or not the caller actually writes
// through the pointers. Optional fields are stamped too when the row has
// them; the mutable borrow is taken either way.
func (q *Query[T]) IterMut() iter.Seq2[Entity, T] {
	return q.iterate(true)
}

// Values iterates row structs only, for callers that do not need the entity.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range q.iterate(false) {
			if !yield(v) {
				return
			}
		}
	}
}

func (q *Query[T]) iterate(mut bool) iter.Seq2[Entity, T] {
	q.refreshArchetypes()
	current := q.world.tick
	last := q.lastRun

	return func(yield func(Entity, T) bool) {
		var result T
		resultPtr := unsafe.Pointer(&result)

		cols := make([]*column, len(q.fields))
		for _, a := range q.matched {
			rows := a.table.rows()
			if rows == 0 {
				continue
			}
			for i, f := range q.fields {
				cols[i] = a.column(f.id)
			}
			filters, filtered := q.rowFilters(a)

			for row := 0; row < rows; row++ {
				if filtered && !filters.pass(row, last, current) {
					continue
				}
				for i, f := range q.fields {
					fieldPtr := (*unsafe.Pointer)(unsafe.Add(resultPtr, f.offset))
					col := cols[i]
					if col == nil {
						*fieldPtr = nil
						continue
					}
					if mut {
						col.stampChanged(row, current)
					}
					*fieldPtr = col.cellPtr(row)
				}
				if !yield(a.table.entities[row], result) {
					return
				}
			}
		}
	}
}

// Count returns the number of rows the query currently matches.
func (q *Query[T]) Count() int {
	q.refreshArchetypes()
	current := q.world.tick
	last := q.lastRun

	total := 0
	for _, a := range q.matched {
		rows := a.table.rows()
		filters, filtered := q.rowFilters(a)
		if !filtered {
			total += rows
			continue
		}
		for row := 0; row < rows; row++ {
			if filters.pass(row, last, current) {
				total++
			}
		}
	}
	return total
}

// Fill populates out with e's components if e is alive and matches the
// query's component signature. Tick filters are not applied to direct
// lookups. Returns false on any mismatch, leaving out untouched for required
// fields that are absent.
func (q *Query[T]) Fill(e Entity, out *T) bool {
	arch, row, ok := q.world.entities.locate(e)
	if !ok {
		return false
	}
	a := q.world.store.get(arch)
	if !q.archetypeMatches(a) {
		return false
	}
	outPtr := unsafe.Pointer(out)
	for _, f := range q.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(outPtr, f.offset))
		col := a.column(f.id)
		if col == nil {
			*fieldPtr = nil
			continue
		}
		*fieldPtr = col.cellPtr(int(row))
	}
	return true
}

// Get returns a populated row struct for one entity, or false if the entity
// does not match the query.
func (q *Query[T]) Get(e Entity) (T, bool) {
	var result T
	if !q.Fill(e, &result) {
		return result, false
	}
	return result, true
}

// MarkRun records the current world tick as this query's last-run point, so
// subsequent Added/Changed filtering only reports newer writes. Inside a
// schedule this happens automatically after the owning system executes.
func (q *Query[T]) MarkRun() {
	q.markRun(q.world.tick)
}

func (q *Query[T]) markRun(t Tick) {
	q.lastRun = t
}

// accessMasks exposes the signature to the scheduler for conflict analysis.
func (q *Query[T]) accessMasks() (required mask256, optional mask256) {
	for _, f := range q.fields {
		if f.optional {
			optional.set(f.id)
		}
	}
	return q.requiredMask, optional
}
