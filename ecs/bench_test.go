package ecs_test

import (
	"testing"

	"github.com/plus3/weft/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	w := ecs.NewWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkSpawnWithMultipleComponents(b *testing.B) {
	w := ecs.NewWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Spawn(
			Position{X: 1.0, Y: 2.0},
			Velocity{DX: 0.5, DY: 0.5},
			Health{Current: 100, Max: 100},
			Name{Value: "Entity"},
		)
	}
}

func BenchmarkDespawn(b *testing.B) {
	w := ecs.NewWorld()

	entities := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i] = w.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Despawn(entities[i])
	}
}

func BenchmarkGet(b *testing.B) {
	w := ecs.NewWorld()

	e := w.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[Position](w, e)
	}
}

func BenchmarkInsert(b *testing.B) {
	w := ecs.NewWorld()

	entities := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i] = w.Spawn(Position{X: 1.0, Y: 2.0})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.Insert(w, entities[i], Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkRemove(b *testing.B) {
	w := ecs.NewWorld()

	entities := make([]ecs.Entity, b.N)
	for i := 0; i < b.N; i++ {
		entities[i] = w.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Remove[Velocity](w, entities[i])
	}
}

func BenchmarkQueryGet(b *testing.B) {
	w := ecs.NewWorld()

	q := ecs.NewQuery[posVelRow](w)
	e := w.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = q.Get(e)
	}
}

func BenchmarkQueryFill(b *testing.B) {
	w := ecs.NewWorld()

	q := ecs.NewQuery[posVelRow](w)
	e := w.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var row posVelRow
		q.Fill(e, &row)
	}
}

func BenchmarkQueryIter(b *testing.B) {
	w := ecs.NewWorld()

	for i := 0; i < 1000; i++ {
		w.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	q := ecs.NewQuery[posVelRow](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := range q.Values() {
			_ = row
		}
	}
}

func BenchmarkQueryIterLarge(b *testing.B) {
	w := ecs.NewWorld()

	for i := 0; i < 10000; i++ {
		w.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	q := ecs.NewQuery[posVelRow](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := range q.Values() {
			_ = row
		}
	}
}

func BenchmarkQueryIterMut(b *testing.B) {
	w := ecs.NewWorld()

	for i := 0; i < 1000; i++ {
		w.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	q := ecs.NewQuery[posVelRow](w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, row := range q.IterMut() {
			row.Pos.X += row.Vel.DX
		}
	}
}

func BenchmarkQueryChangedFilter(b *testing.B) {
	w := ecs.NewWorld()

	for i := 0; i < 1000; i++ {
		w.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	q := ecs.NewQuery[posVelRow](w).Changed(ecs.TypeOf[Position]())
	q.MarkRun()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for row := range q.Values() {
			_ = row
		}
	}
}

func BenchmarkCommandsFlush(b *testing.B) {
	w := ecs.NewWorld()
	cmd := ecs.NewCommands(w)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e := cmd.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
		cmd.Despawn(e)
		cmd.Flush()
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	w := ecs.NewWorld()

	for i := 0; i < 1000; i++ {
		w.Spawn(Position{X: float32(i), Y: float32(i)}, Velocity{DX: 0.5, DY: 0.5})
	}

	sched := ecs.NewScheduler(w)
	sched.Add(&movementSystem{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sched.Once(0.016)
	}
}

func BenchmarkSchedulerMultipleSystems(b *testing.B) {
	w := ecs.NewWorld()

	for i := 0; i < 1000; i++ {
		w.Spawn(
			Position{X: float32(i), Y: float32(i)},
			Velocity{DX: 0.5, DY: 0.5},
			Health{Current: 50, Max: 100},
		)
	}

	sched := ecs.NewScheduler(w)
	sched.Add(&movementSystem{})
	sched.Add(&regenSystem{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = sched.Once(0.016)
	}
}
