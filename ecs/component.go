package ecs

import (
	"sort"
	"sync"
)

// ComponentId uniquely identifies a component schema for the lifetime of the process.
// The zero value never names a schema.
type ComponentId uint32

// AnyComponentType is the type-erased view of a ComponentType. It is what the
// World dispatches on when it needs to pick a store without knowing the data shape.
type AnyComponentType interface {
	Id() ComponentId
	Name() string
	newStore(capacity int) iComponentStore
}

// ComponentType is a tag naming a component schema whose data shape is T.
// Two ComponentType values are equal iff they were returned by the same Define call.
type ComponentType[T any] struct {
	id   ComponentId
	name string
}

// Define creates a new component schema tag. The name is informational only;
// defining two schemas with the same name yields two distinct tags.
func Define[T any](name string) ComponentType[T] {
	return defaultRegistry.define(func(id ComponentId) AnyComponentType {
		return ComponentType[T]{id: id, name: name}
	}).(ComponentType[T])
}

// Id returns the schema's process-wide identifier.
func (c ComponentType[T]) Id() ComponentId {
	return c.id
}

// Name returns the human-readable name given to Define.
func (c ComponentType[T]) Name() string {
	return c.name
}

func (c ComponentType[T]) String() string {
	return c.name
}

func (c ComponentType[T]) newStore(capacity int) iComponentStore {
	return newComponentStore(c, capacity)
}

// ComponentRegistry records every schema defined in the process. Worlds create
// their stores lazily, so the registry is the only place that knows about
// schemas no entity has used yet.
type ComponentRegistry struct {
	mu     sync.RWMutex
	nextId ComponentId
	types  map[ComponentId]AnyComponentType
}

var defaultRegistry = newComponentRegistry()

// newComponentRegistry creates an empty registry.
func newComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		types: make(map[ComponentId]AnyComponentType),
	}
}

// DefaultRegistry returns the registry Define writes to.
func DefaultRegistry() *ComponentRegistry {
	return defaultRegistry
}

func (r *ComponentRegistry) define(build func(ComponentId) AnyComponentType) AnyComponentType {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextId++
	ct := build(r.nextId)
	r.types[ct.Id()] = ct
	return ct
}

// Lookup returns the schema registered under id.
func (r *ComponentRegistry) Lookup(id ComponentId) (AnyComponentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.types[id]
	return ct, ok
}

// Types returns every registered schema ordered by id.
func (r *ComponentRegistry) Types() []AnyComponentType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]AnyComponentType, 0, len(r.types))
	for _, ct := range r.types {
		types = append(types, ct)
	}
	sort.Slice(types, func(i, j int) bool { return types[i].Id() < types[j].Id() })
	return types
}
