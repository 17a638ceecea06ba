package ecs

// table is the columnar backing store of one archetype: one column per
// component type plus a dense row -> Entity list. All columns and the entity
// list stay parallel; every mutation below preserves that.
type table struct {
	entities []Entity
	columns  []*column
}

func newTable(infos []*ComponentInfo, capacity int) *table {
	t := &table{
		columns: make([]*column, len(infos)),
	}
	for i, info := range infos {
		t.columns[i] = newColumn(info, capacity)
	}
	return t
}

func (t *table) rows() int {
	return len(t.entities)
}

// swapRemove removes row from the entity list and every column, moving the
// last row into the hole. It returns the entity that was moved into row, if
// any, so the caller can update its location.
func (t *table) swapRemove(row int) (moved Entity, hasMoved bool) {
	for _, c := range t.columns {
		c.swapRemove(row)
	}
	return t.swapRemoveEntity(row)
}

// swapRemoveMoved is swapRemove for a row whose values were copied elsewhere:
// either to another archetype's table or, for a removed component, out to the
// caller. Drop hooks must not fire on values that live on.
func (t *table) swapRemoveMoved(row int) (moved Entity, hasMoved bool) {
	for _, c := range t.columns {
		c.swapRemoveMoved(row)
	}
	return t.swapRemoveEntity(row)
}

func (t *table) swapRemoveEntity(row int) (moved Entity, hasMoved bool) {
	last := len(t.entities) - 1
	if row != last {
		moved = t.entities[last]
		t.entities[row] = moved
		hasMoved = true
	}
	t.entities = t.entities[:last]
	return moved, hasMoved
}

// clampTicks pins old change-detection stamps across all columns.
func (t *table) clampTicks(current Tick) {
	for _, c := range t.columns {
		c.clampTicks(current)
	}
}
