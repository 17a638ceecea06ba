package ecs

import "reflect"

// Commands buffers structural mutations requested while systems are running,
// so archetype tables are never reshaped under an iterating query. The
// scheduler gives every system its own buffer and applies them at the next
// sync point (end of the pass, or an apply-deferred barrier).
type Commands struct {
	world    *World
	spawns   []spawnCommand
	despawns []Entity
	inserts  []insertCommand
	removes  []removeCommand
	defers   []func(*World)
}

type spawnCommand struct {
	entity     Entity
	components []any
}

type insertCommand struct {
	entity    Entity
	component any
}

type removeCommand struct {
	entity Entity
	typ    reflect.Type
}

// NewCommands creates a standalone command buffer for w. Code running under a
// scheduler should use the buffer handed to it in the Frame instead.
func NewCommands(w *World) *Commands {
	return &Commands{world: w}
}

// Spawn queues an entity spawn and returns the entity handle immediately. The
// handle is reserved: it is alive and can be referenced by other commands or
// stored in components, but it has no row until the buffer is flushed, so
// queries do not see it yet.
func (c *Commands) Spawn(components ...any) Entity {
	e := c.world.entities.reserve()
	c.spawns = append(c.spawns, spawnCommand{entity: e, components: components})
	return e
}

// Despawn queues an entity removal.
func (c *Commands) Despawn(e Entity) {
	c.despawns = append(c.despawns, e)
}

// Entity returns a scoped view for queueing operations against one entity.
func (c *Commands) Entity(e Entity) EntityCommands {
	return EntityCommands{commands: c, entity: e}
}

// Defer queues an arbitrary closure to run with exclusive world access at the
// flush point, after all queued structural commands.
func (c *Commands) Defer(fn func(*World)) {
	c.defers = append(c.defers, fn)
}

// EntityCommands queues operations targeting a single entity.
type EntityCommands struct {
	commands *Commands
	entity   Entity
}

// Insert queues a component insertion. Inserting a component the entity
// already holds overwrites the value at flush time.
func (ec EntityCommands) Insert(component any) EntityCommands {
	ec.commands.inserts = append(ec.commands.inserts, insertCommand{
		entity:    ec.entity,
		component: component,
	})
	return ec
}

// Remove queues removal of the component with the given type (see TypeOf).
// Removing an absent component is a no-op at flush time.
func (ec EntityCommands) Remove(t reflect.Type) EntityCommands {
	ec.commands.removes = append(ec.commands.removes, removeCommand{
		entity: ec.entity,
		typ:    t,
	})
	return ec
}

// Flush applies the buffered commands against the world and resets the
// buffer. Despawns run first so later commands against despawned entities
// become no-ops; spawns run before inserts so commands can target entities
// reserved in the same batch.
//
// The scheduler flushes every system's buffer at the end of each pass and at
// apply-deferred barriers; call Flush directly only when driving a world
// without a scheduler.
func (c *Commands) Flush() {
	w := c.world

	for _, e := range c.despawns {
		w.Despawn(e)
	}
	for _, cmd := range c.spawns {
		if !w.entities.isAlive(cmd.entity) {
			continue // despawned before it ever got a row
		}
		w.placeEntity(cmd.entity, cmd.components)
	}
	for _, cmd := range c.inserts {
		if !w.entities.isAlive(cmd.entity) {
			continue
		}
		_ = w.insertDynamic(cmd.entity, cmd.component)
	}
	for _, cmd := range c.removes {
		w.removeDynamic(cmd.entity, cmd.typ)
	}
	for _, fn := range c.defers {
		fn(w)
	}

	c.spawns = c.spawns[:0]
	c.despawns = c.despawns[:0]
	c.inserts = c.inserts[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}

func (c *Commands) isEmpty() bool {
	return len(c.spawns) == 0 && len(c.despawns) == 0 &&
		len(c.inserts) == 0 && len(c.removes) == 0 && len(c.defers) == 0
}
