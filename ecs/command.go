package ecs

import "reflect"

// command is one deferred world mutation, queued by a system that only
// holds the world by shared reference and applied when the buffer is
// flushed by the stage that owns it.
type command interface {
	apply(world *World)
}

type despawnCommand struct{ entity Entity }

func (c despawnCommand) apply(world *World) { world.Despawn(c.entity) }

type removeComponentCommand struct {
	entity       Entity
	componentType reflect.Type
	remove       func(world *World, e Entity)
}

func (c removeComponentCommand) apply(world *World) { c.remove(world, c.entity) }

type addComponentCommand struct {
	entity Entity
	add    func(world *World, e Entity)
}

func (c addComponentCommand) apply(world *World) { c.add(world, c.entity) }

// CommandBuffer queues world mutations for systems that only hold shared
// access to World, applying them in the order they were recorded once
// Flush runs (ported from the original's CommandBuffer, whose push_front
// + pop_back deque nets to the same first-in-first-out apply order as a
// plain append-and-drain-from-front slice).
type CommandBuffer struct {
	commands []command
}

// NewCommandBuffer returns an empty command buffer.
func NewCommandBuffer() *CommandBuffer {
	return &CommandBuffer{}
}

func (cb *CommandBuffer) push(c command) { cb.commands = append(cb.commands, c) }

// Despawn queues world.Despawn(entity) for the next Flush.
func (cb *CommandBuffer) Despawn(entity Entity) {
	cb.push(despawnCommand{entity: entity})
}

// QueueRemoveComponent queues RemoveComponent[T](world, entity) for the
// next Flush. A free function rather than a CommandBuffer method because
// Go methods cannot carry their own type parameters.
func QueueRemoveComponent[T any](cb *CommandBuffer, entity Entity) {
	cb.push(removeComponentCommand{
		entity:        entity,
		componentType: typeOf[T](),
		remove:        func(world *World, e Entity) { RemoveComponent[T](world, e) },
	})
}

// QueueAddComponent queues AddComponent[T](world, entity, value) for the
// next Flush.
func QueueAddComponent[T any](cb *CommandBuffer, entity Entity, value T) {
	cb.push(addComponentCommand{
		entity: entity,
		add:    func(world *World, e Entity) { AddComponent[T](world, e, value) },
	})
}

// Spawn reserves a new entity (lock-free, valid under shared world access)
// and returns a fluent editor whose QueueAdd/QueueRemoveFrom calls are
// queued against this buffer rather than applied immediately.
func (cb *CommandBuffer) Spawn(world *World) *CommandEntityEditor {
	return &CommandEntityEditor{buffer: cb, entity: world.ReserveEntity()}
}

// Edit returns a fluent editor for an already-existing entity, queuing
// QueueAdd/QueueRemoveFrom calls against this buffer.
func (cb *CommandBuffer) Edit(entity Entity) *CommandEntityEditor {
	return &CommandEntityEditor{buffer: cb, entity: entity}
}

// Flush materialises any entities reserved since the world's last flush,
// then applies every queued command in the order it was recorded, then
// clears the buffer.
func (cb *CommandBuffer) Flush(world *World) {
	world.Flush()
	for _, c := range cb.commands {
		c.apply(world)
	}
	cb.commands = cb.commands[:0]
}

// CommandEntityEditor is CommandBuffer's deferred counterpart to
// EntityEditor: every call queues a command instead of mutating the world
// immediately (spec §9 supplemented features).
type CommandEntityEditor struct {
	buffer *CommandBuffer
	entity Entity
}

// Entity returns the (possibly still-reserved, not yet flushed) entity
// this editor is bound to.
func (ce *CommandEntityEditor) Entity() Entity { return ce.entity }

// QueueAdd queues AddComponent[T] against the bound entity and returns the
// editor for chaining.
func QueueAdd[T any](ce *CommandEntityEditor, value T) *CommandEntityEditor {
	QueueAddComponent[T](ce.buffer, ce.entity, value)
	return ce
}

// QueueRemoveFrom queues RemoveComponent[T] against the bound entity and
// returns the editor for chaining.
func QueueRemoveFrom[T any](ce *CommandEntityEditor) *CommandEntityEditor {
	QueueRemoveComponent[T](ce.buffer, ce.entity)
	return ce
}

// Despawn queues a despawn of the bound entity and returns its id.
func (ce *CommandEntityEditor) Despawn() Entity {
	ce.buffer.Despawn(ce.entity)
	return ce.entity
}
