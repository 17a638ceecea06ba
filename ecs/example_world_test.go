package ecs_test

import (
	"fmt"

	"github.com/plus3/weft/ecs"
)

type Transform struct {
	X, Y float32
}

type Speed struct {
	DX, DY float32
}

type Hitpoints struct {
	Current, Max int
}

// ExampleWorld demonstrates the basic entity lifecycle: spawning with
// components, reading and writing them, reshaping the component set, and
// despawning. Component types need no registration step; they are registered
// on first use.
func ExampleWorld() {
	w := ecs.NewWorld()

	player := w.Spawn(Transform{X: 10, Y: 20}, Hitpoints{Current: 80, Max: 100})

	pos, _ := ecs.Get[Transform](w, player)
	fmt.Printf("spawned at (%.0f, %.0f)\n", pos.X, pos.Y)

	hp, _ := ecs.GetMut[Hitpoints](w, player)
	hp.Current = 100
	fmt.Printf("healed to %d/%d\n", hp.Current, hp.Max)

	// Adding a component moves the entity to another archetype; existing
	// components travel with it.
	_ = ecs.Insert(w, player, Speed{DX: 1, DY: 0})
	fmt.Println("can move:", ecs.Has[Speed](w, player))

	_, _ = ecs.Remove[Speed](w, player)
	fmt.Println("can move:", ecs.Has[Speed](w, player))

	w.Despawn(player)
	fmt.Println("alive:", w.IsAlive(player))

	// Output:
	// spawned at (10, 20)
	// healed to 100/100
	// can move: true
	// can move: false
	// alive: false
}

// ExampleWorld_staleHandles demonstrates generation tracking. Despawning
// frees the entity's ID slot for reuse; handles to the old occupant go stale
// instead of aliasing the new one.
func ExampleWorld_staleHandles() {
	w := ecs.NewWorld()

	old := w.Spawn(Transform{X: 1, Y: 1})
	w.Despawn(old)

	fresh := w.Spawn(Transform{X: 2, Y: 2})
	fmt.Println("same slot:", old.ID == fresh.ID)
	fmt.Println("old handle alive:", w.IsAlive(old))
	fmt.Println("new handle alive:", w.IsAlive(fresh))

	// Output:
	// same slot: true
	// old handle alive: false
	// new handle alive: true
}
