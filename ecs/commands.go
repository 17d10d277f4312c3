package ecs

// ComponentValue pairs a component type with a value of its data shape.
type ComponentValue struct {
	Type  AnyComponentType
	Value any
}

// With builds a ComponentValue with compile-time checking of the value's type.
func With[T any](ct ComponentType[T], value T) ComponentValue {
	return ComponentValue{Type: ct, Value: value}
}

// Commands buffers structural changes a system wants to make to entities other
// than the one it is visiting. The World flushes its buffer at the end of
// every Update.
type Commands struct {
	spawns   []spawnCommand
	destroys []EntityId
	adds     []addComponentCommand
	removes  []removeComponentCommand
	defers   []func()
}

func newCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []ComponentValue
	onSpawn    func(EntityId)
}

type addComponentCommand struct {
	entity    EntityId
	component ComponentValue
}

type removeComponentCommand struct {
	entity EntityId
	ct     AnyComponentType
}

// Defer queues fn to run after every other queued command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues the creation of an entity carrying the given components.
func (c *Commands) Spawn(components ...ComponentValue) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// SpawnThen is Spawn with a callback receiving the new id.
func (c *Commands) SpawnThen(onSpawn func(EntityId), components ...ComponentValue) {
	c.spawns = append(c.spawns, spawnCommand{components: components, onSpawn: onSpawn})
}

// Destroy queues an entity destruction.
func (c *Commands) Destroy(entity EntityId) {
	c.destroys = append(c.destroys, entity)
}

// AddComponent queues a component upsert.
func (c *Commands) AddComponent(entity EntityId, component ComponentValue) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, ct AnyComponentType) {
	c.removes = append(c.removes, removeComponentCommand{
		entity: entity,
		ct:     ct,
	})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.destroys) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies queued commands to w and resets the buffer. Destroys run first;
// removes and adds aimed at entities destroyed in the same flush are dropped.
// An add aimed at an entity that was already dead is a lifecycle bug: it is
// skipped and the first such error is returned after every command has run.
func (c *Commands) Flush(w *World) error {
	var firstErr error
	destroyed := make(map[EntityId]bool, len(c.destroys))

	for _, id := range c.destroys {
		w.DestroyEntity(id)
		destroyed[id] = true
	}

	for _, cmd := range c.removes {
		if !destroyed[cmd.entity] {
			w.RemoveComponent(cmd.entity, cmd.ct)
		}
	}

	for _, cmd := range c.adds {
		if destroyed[cmd.entity] {
			continue
		}
		if err := w.SetComponent(cmd.entity, cmd.component.Type, cmd.component.Value); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	for _, cmd := range c.spawns {
		id := w.CreateEntity()
		for _, comp := range cmd.components {
			w.ensureStore(comp.Type).SetAny(id, comp.Value)
		}
		if cmd.onSpawn != nil {
			cmd.onSpawn(id)
		}
	}

	defers := c.defers

	c.spawns = c.spawns[:0]
	c.destroys = c.destroys[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = nil

	for _, fn := range defers {
		fn()
	}

	return firstErr
}
