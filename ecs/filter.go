package ecs

import "reflect"

// Without narrows the query to archetypes lacking all of the given component
// types. Types are passed via TypeOf. Returns the query for chaining; filters
// must be added before the first iteration.
func (q *Query[T]) Without(types ...reflect.Type) *Query[T] {
	for _, t := range types {
		q.withoutMask.set(q.world.registry.componentID(t))
	}
	q.invalidate()
	return q
}

// Added narrows the query to rows whose component of the given type was added
// after the query's last-run tick. The component becomes part of the required
// signature.
func (q *Query[T]) Added(types ...reflect.Type) *Query[T] {
	for _, t := range types {
		id := q.world.registry.componentID(t)
		q.requiredMask.set(id)
		q.addedFilter = append(q.addedFilter, id)
	}
	q.invalidate()
	return q
}

// Changed narrows the query to rows whose component of the given type was
// written (or borrowed mutably) after the query's last-run tick. The
// component becomes part of the required signature.
//
// Change stamps reflect write intent, not observed mutation: a mutable borrow
// that never stores counts as a change. This is a deliberate
// over-approximation; it never misses a real write.
func (q *Query[T]) Changed(types ...reflect.Type) *Query[T] {
	for _, t := range types {
		id := q.world.registry.componentID(t)
		q.requiredMask.set(id)
		q.changedFilter = append(q.changedFilter, id)
	}
	q.invalidate()
	return q
}

func (q *Query[T]) invalidate() {
	q.lastArchetypeCount = -1
}

// rowFilters resolves the query's tick filters against one archetype's
// columns. filtered is false when the query has no tick filters, letting the
// iterator skip per-row checks entirely.
type rowFilterSet struct {
	addedCols   []*column
	changedCols []*column
}

func (q *Query[T]) rowFilters(a *archetype) (rowFilterSet, bool) {
	if len(q.addedFilter) == 0 && len(q.changedFilter) == 0 {
		return rowFilterSet{}, false
	}
	var fs rowFilterSet
	for _, id := range q.addedFilter {
		fs.addedCols = append(fs.addedCols, a.column(id))
	}
	for _, id := range q.changedFilter {
		fs.changedCols = append(fs.changedCols, a.column(id))
	}
	return fs, true
}

// pass applies the half-window tick comparison to every filtered column. All
// filters must pass for the row to be yielded.
func (fs *rowFilterSet) pass(row int, last, current Tick) bool {
	for _, col := range fs.addedCols {
		if !col.added[row].newerThan(last, current) {
			return false
		}
	}
	for _, col := range fs.changedCols {
		if !col.changed[row].newerThan(last, current) {
			return false
		}
	}
	return true
}
