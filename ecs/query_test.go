package ecs_test

import (
	"testing"

	"github.com/plus3/weft/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posRow struct {
	Pos *Position
}

type posVelRow struct {
	Pos *Position
	Vel *Velocity
}

type namedRow struct {
	Pos  *Position
	Name *Name `ecs:"optional"`
}

func TestQueryBasicIteration(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 1.0}, Velocity{DX: 0.1, DY: 0.1})
	w.Spawn(Position{X: 2.0, Y: 2.0}, Velocity{DX: 0.2, DY: 0.2})
	w.Spawn(Position{X: 3.0, Y: 3.0}) // no Velocity, must not match

	q := ecs.NewQuery[posVelRow](w)

	var xs []float32
	for e, row := range q.Iter() {
		assert.True(t, w.IsAlive(e))
		xs = append(xs, row.Pos.X)
	}
	assert.ElementsMatch(t, []float32{1.0, 2.0}, xs)
	assert.Equal(t, 2, q.Count())
}

func TestQueryMatchesSupersets(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 1.0})
	w.Spawn(Position{X: 2.0, Y: 2.0}, Velocity{DX: 0.1, DY: 0.1})
	w.Spawn(Position{X: 3.0, Y: 3.0}, Velocity{DX: 0.1, DY: 0.1}, Name{Value: "c"})
	w.Spawn(Velocity{DX: 0.5, DY: 0.5})

	// A single-component signature matches every archetype containing it.
	q := ecs.NewQuery[posRow](w)
	assert.Equal(t, 3, q.Count())
}

func TestQueryMutation(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 1.0}, Velocity{DX: 2.0, DY: 3.0})

	q := ecs.NewQuery[posVelRow](w)
	for _, row := range q.IterMut() {
		row.Pos.X += row.Vel.DX
		row.Pos.Y += row.Vel.DY
	}

	row, ok := q.Get(findSingle(t, q))
	require.True(t, ok)
	assert.Equal(t, float32(3.0), row.Pos.X)
	assert.Equal(t, float32(4.0), row.Pos.Y)
}

func findSingle[T any](t *testing.T, q *ecs.Query[T]) ecs.Entity {
	t.Helper()
	var found ecs.Entity
	count := 0
	for e := range q.Iter() {
		found = e
		count++
	}
	require.Equal(t, 1, count)
	return found
}

func TestQueryOptionalField(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 1.0})
	w.Spawn(Position{X: 2.0, Y: 2.0}, Name{Value: "named"})

	q := ecs.NewQuery[namedRow](w)

	named := 0
	anonymous := 0
	for _, row := range q.Iter() {
		require.NotNil(t, row.Pos)
		if row.Name != nil {
			named++
			assert.Equal(t, "named", row.Name.Value)
		} else {
			anonymous++
		}
	}
	assert.Equal(t, 1, named)
	assert.Equal(t, 1, anonymous)
}

func TestQueryWithout(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 1.0})
	w.Spawn(Position{X: 2.0, Y: 2.0}, PlayerController{})
	w.Spawn(Position{X: 3.0, Y: 3.0}, AI{State: 1})

	q := ecs.NewQuery[posRow](w).Without(ecs.TypeOf[PlayerController]())

	var xs []float32
	for _, row := range q.Iter() {
		xs = append(xs, row.Pos.X)
	}
	assert.ElementsMatch(t, []float32{1.0, 3.0}, xs)

	both := ecs.NewQuery[posRow](w).Without(
		ecs.TypeOf[PlayerController](),
		ecs.TypeOf[AI](),
	)
	assert.Equal(t, 1, both.Count())
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 1.0})

	q := ecs.NewQuery[posRow](w)
	assert.Equal(t, 1, q.Count())

	// A spawn that creates a new archetype must show up on the next
	// iteration, after the cached archetype list refreshes.
	w.Spawn(Position{X: 2.0, Y: 2.0}, Health{Current: 10, Max: 10})
	assert.Equal(t, 2, q.Count())

	// Growth within known archetypes is picked up without a refresh.
	w.Spawn(Position{X: 3.0, Y: 3.0})
	assert.Equal(t, 3, q.Count())
}

func TestQueryDoesNotSeeDespawned(t *testing.T) {
	w := ecs.NewWorld()

	e1 := w.Spawn(Position{X: 1.0, Y: 1.0})
	w.Spawn(Position{X: 2.0, Y: 2.0})

	q := ecs.NewQuery[posRow](w)
	assert.Equal(t, 2, q.Count())

	w.Despawn(e1)
	assert.Equal(t, 1, q.Count())
	for _, row := range q.Iter() {
		assert.Equal(t, float32(2.0), row.Pos.X)
	}
}

func TestQueryGet(t *testing.T) {
	w := ecs.NewWorld()

	e := w.Spawn(Position{X: 5.0, Y: 6.0}, Velocity{DX: 1.0, DY: 2.0})
	other := w.Spawn(Position{X: 9.0, Y: 9.0})

	q := ecs.NewQuery[posVelRow](w)

	row, ok := q.Get(e)
	require.True(t, ok)
	assert.Equal(t, float32(5.0), row.Pos.X)
	assert.Equal(t, float32(1.0), row.Vel.DX)

	// Entity outside the signature
	_, ok = q.Get(other)
	assert.False(t, ok)

	// Dead entity
	w.Despawn(e)
	_, ok = q.Get(e)
	assert.False(t, ok)
}

func TestQueryFillOptional(t *testing.T) {
	w := ecs.NewWorld()

	plain := w.Spawn(Position{X: 1.0, Y: 1.0})
	named := w.Spawn(Position{X: 2.0, Y: 2.0}, Name{Value: "x"})

	q := ecs.NewQuery[namedRow](w)

	var row namedRow
	require.True(t, q.Fill(plain, &row))
	assert.Nil(t, row.Name)

	require.True(t, q.Fill(named, &row))
	require.NotNil(t, row.Name)
	assert.Equal(t, "x", row.Name.Value)
}

func TestQueryValues(t *testing.T) {
	w := ecs.NewWorld()

	w.Spawn(Position{X: 1.0, Y: 0.0})
	w.Spawn(Position{X: 2.0, Y: 0.0})

	q := ecs.NewQuery[posRow](w)

	var sum float32
	for row := range q.Values() {
		sum += row.Pos.X
	}
	assert.Equal(t, float32(3.0), sum)
}

func TestQueryEarlyBreak(t *testing.T) {
	w := ecs.NewWorld()

	for i := range 10 {
		w.Spawn(Position{X: float32(i), Y: 0.0})
	}

	q := ecs.NewQuery[posRow](w)

	seen := 0
	for range q.Iter() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)

	// The iterator is restartable after a break.
	assert.Equal(t, 10, q.Count())
}

func TestQueryInvalidViewStructs(t *testing.T) {
	w := ecs.NewWorld()

	// Non-struct type parameter
	assert.Panics(t, func() { ecs.NewQuery[int](w) })

	// Non-pointer field
	type byValue struct {
		Pos Position
	}
	assert.Panics(t, func() { ecs.NewQuery[byValue](w) })

	// Unknown tag value
	type badTag struct {
		Pos *Position `ecs:"maybe"`
	}
	assert.Panics(t, func() { ecs.NewQuery[badTag](w) })
}
