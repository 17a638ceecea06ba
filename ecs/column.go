package ecs

import (
	"reflect"
	"unsafe"
)

// column is one contiguous array of a single component type, parallel-indexed
// by table row. Each cell carries an added tick (when the component first
// appeared on the row's entity) and a changed tick (last exclusive-access
// borrow). The backing array is allocated through reflect so the GC sees the
// element type and scans pointer-bearing components correctly.
type column struct {
	info    *ComponentInfo
	data    reflect.Value // slice of info.Type, len == capacity
	length  int
	added   []Tick
	changed []Tick
}

func newColumn(info *ComponentInfo, capacity int) *column {
	if capacity < 1 {
		capacity = 1
	}
	return &column{
		info:    info,
		data:    reflect.MakeSlice(reflect.SliceOf(info.Type), capacity, capacity),
		added:   make([]Tick, 0, capacity),
		changed: make([]Tick, 0, capacity),
	}
}

func (c *column) grow() {
	newCap := c.data.Len() * 2
	bigger := reflect.MakeSlice(c.data.Type(), newCap, newCap)
	reflect.Copy(bigger, c.data)
	c.data = bigger
}

// basePtr returns the address of the first cell. Only valid while no
// structural operation runs; iteration and growth never overlap.
func (c *column) basePtr() unsafe.Pointer {
	return c.data.Index(0).Addr().UnsafePointer()
}

func (c *column) cellPtr(row int) unsafe.Pointer {
	return c.data.Index(row).Addr().UnsafePointer()
}

func (c *column) value(row int) reflect.Value {
	return c.data.Index(row)
}

// push appends v and stamps both ticks, returning the new row.
func (c *column) push(v reflect.Value, tick Tick) int {
	if c.length == c.data.Len() {
		c.grow()
	}
	row := c.length
	c.data.Index(row).Set(v)
	c.added = append(c.added, tick)
	c.changed = append(c.changed, tick)
	c.length++
	return row
}

// pushFrom appends the cell at srcRow of src, carrying its ticks over. Used
// for archetype moves, which must not look like fresh writes to change
// detection.
func (c *column) pushFrom(src *column, srcRow int) int {
	if c.length == c.data.Len() {
		c.grow()
	}
	row := c.length
	c.data.Index(row).Set(src.data.Index(srcRow))
	c.added = append(c.added, src.added[srcRow])
	c.changed = append(c.changed, src.changed[srcRow])
	c.length++
	return row
}

// set overwrites the cell at row in place, dropping the previous value. The
// changed tick is stamped; the added tick is preserved, because the component
// was already present on the entity.
func (c *column) set(row int, v reflect.Value, tick Tick) {
	c.dropCell(row)
	c.data.Index(row).Set(v)
	c.changed[row] = tick
}

func (c *column) stampChanged(row int, tick Tick) {
	c.changed[row] = tick
}

// swapRemove drops the cell at row and moves the last cell (value and ticks)
// into the hole. The vacated last cell is zeroed so it does not retain
// pointers.
func (c *column) swapRemove(row int) {
	c.dropCell(row)
	c.swapRemoveTail(row)
}

// swapRemoveMoved is swapRemove without the drop hook, for rows whose value
// was just copied to another archetype and is still live there.
func (c *column) swapRemoveMoved(row int) {
	c.data.Index(row).SetZero()
	c.swapRemoveTail(row)
}

func (c *column) swapRemoveTail(row int) {
	last := c.length - 1
	if row != last {
		c.data.Index(row).Set(c.data.Index(last))
		c.added[row] = c.added[last]
		c.changed[row] = c.changed[last]
	}
	c.data.Index(last).SetZero()
	c.added = c.added[:last]
	c.changed = c.changed[:last]
	c.length = last
}

// dropCell runs the registered drop hook for the cell, or zeroes it when no
// hook is registered.
func (c *column) dropCell(row int) {
	if c.info.Drop != nil {
		c.info.Drop(c.cellPtr(row))
		return
	}
	c.data.Index(row).SetZero()
}

// clampTicks pins stamps older than maxTickAge, see World.CheckTicks.
func (c *column) clampTicks(current Tick) {
	for i := 0; i < c.length; i++ {
		c.added[i].clamp(current)
		c.changed[i].clamp(current)
	}
}
