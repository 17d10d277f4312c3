package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
	"go.uber.org/zap"
)

const defaultCapacity = 256

// World owns an entity registry and one store per component type it has seen.
// A World is not safe for concurrent use; every call is expected to come from
// the goroutine driving the frame loop.
type World struct {
	entities   *entityRegistry
	storeIndex *intmap.Map[ComponentId, int]
	stores     []iComponentStore
	systems    *scheduler
	commands   *Commands
	capacity   int
	logger     *zap.Logger
}

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for lifecycle diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		w.logger = logger
	}
}

// WithCapacity sizes the entity registry and every store created later.
func WithCapacity(capacity int) Option {
	return func(w *World) {
		w.capacity = capacity
	}
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	w := &World{
		capacity: defaultCapacity,
		logger:   zap.NewNop(),
		systems:  newScheduler(),
		commands: newCommands(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.entities = newEntityRegistry(w.capacity)
	w.storeIndex = intmap.New[ComponentId, int](32)
	return w
}

// CreateEntity allocates a fresh id and marks it alive.
func (w *World) CreateEntity() EntityId {
	return w.entities.create()
}

// DestroyEntity marks id dead and deletes its row from every store. Destroying
// an entity that is not alive is a no-op.
func (w *World) DestroyEntity(id EntityId) {
	if !w.entities.destroy(id) {
		return
	}
	for _, store := range w.stores {
		store.Delete(id)
	}
}

// IsAlive reports whether id names a live entity.
func (w *World) IsAlive(id EntityId) bool {
	return w.entities.isAlive(id)
}

// EntityCount returns the number of live entities.
func (w *World) EntityCount() int {
	return w.entities.count()
}

func (w *World) lookupStore(id ComponentId) iComponentStore {
	idx, ok := w.storeIndex.Get(id)
	if !ok {
		return nil
	}
	return w.stores[idx]
}

func (w *World) ensureStore(ct AnyComponentType) iComponentStore {
	if store := w.lookupStore(ct.Id()); store != nil {
		return store
	}
	if ct.Id() == 0 {
		panic(fmt.Sprintf("ecs: component type %q was not created with Define", ct.Name()))
	}

	store := ct.newStore(w.capacity)
	w.storeIndex.Put(ct.Id(), len(w.stores))
	w.stores = append(w.stores, store)
	return store
}

func storeFor[T any](w *World, ct ComponentType[T]) *componentStore[T] {
	return w.ensureStore(ct).(*componentStore[T])
}

func (w *World) rejectDead(id EntityId, ct AnyComponentType) error {
	w.logger.Warn("component write on dead entity",
		zap.Uint64("entity", uint64(id)),
		zap.String("component", ct.Name()))
	return entityNotAlive(id)
}

// AddComponent writes value as id's ct row, overwriting any previous value,
// and returns the stored value. It fails with ErrEntityNotAlive if id is not
// alive, in which case no store is created or modified.
func AddComponent[T any](w *World, id EntityId, ct ComponentType[T], value T) (T, error) {
	if !w.entities.isAlive(id) {
		var zero T
		return zero, w.rejectDead(id, ct)
	}
	storeFor(w, ct).Set(id, value)
	return value, nil
}

// UpsertComponent is identical to AddComponent. There is deliberately no
// insert-only variant.
func UpsertComponent[T any](w *World, id EntityId, ct ComponentType[T], value T) (T, error) {
	return AddComponent(w, id, ct, value)
}

// GetComponent returns a copy of id's ct row. Mutating the copy has no effect
// until it is written back with UpsertComponent.
func GetComponent[T any](w *World, id EntityId, ct ComponentType[T]) (T, bool) {
	store := w.lookupStore(ct.Id())
	if store == nil {
		var zero T
		return zero, false
	}
	return store.(*componentStore[T]).Get(id)
}

// HasComponent reports whether id has a ct row.
func (w *World) HasComponent(id EntityId, ct AnyComponentType) bool {
	store := w.lookupStore(ct.Id())
	return store != nil && store.Has(id)
}

// RemoveComponent deletes id's ct row. Missing stores and rows are ignored.
func (w *World) RemoveComponent(id EntityId, ct AnyComponentType) {
	if store := w.lookupStore(ct.Id()); store != nil {
		store.Delete(id)
	}
}

// Component is the type-erased form of GetComponent.
func (w *World) Component(id EntityId, ct AnyComponentType) (any, bool) {
	store := w.lookupStore(ct.Id())
	if store == nil {
		return nil, false
	}
	return store.GetAny(id)
}

// SetComponent is the type-erased form of UpsertComponent. value must be the
// schema's data type or a pointer to it; anything else panics.
func (w *World) SetComponent(id EntityId, ct AnyComponentType, value any) error {
	if !w.entities.isAlive(id) {
		return w.rejectDead(id, ct)
	}
	w.ensureStore(ct).SetAny(id, value)
	return nil
}

// ComponentTypesOf returns the types id currently has rows in, in store creation order.
func (w *World) ComponentTypesOf(id EntityId) []AnyComponentType {
	types := make([]AnyComponentType, 0, 4)
	for _, store := range w.stores {
		if store.Has(id) {
			types = append(types, store.Type())
		}
	}
	return types
}

// ComponentTypes returns every type this World has created a store for.
func (w *World) ComponentTypes() []AnyComponentType {
	types := make([]AnyComponentType, len(w.stores))
	for i, store := range w.stores {
		types[i] = store.Type()
	}
	return types
}

// AddSystem appends system to the frame's execution order.
func (w *World) AddSystem(system System) SystemHandle {
	entry := w.systems.add(system)
	w.logger.Debug("system added",
		zap.Uint64("handle", uint64(entry.handle)),
		zap.String("system", entry.name))
	return entry.handle
}

// RemoveSystem removes the registration identified by handle. Unknown handles
// are ignored.
func (w *World) RemoveSystem(handle SystemHandle) {
	if entry := w.systems.remove(handle); entry != nil {
		w.logger.Debug("system removed",
			zap.Uint64("handle", uint64(handle)),
			zap.String("system", entry.name))
	}
}

// Update runs every system registered when the call starts, in registration
// order, then applies queued Commands. Systems added or removed during the
// call take effect on the next one.
func (w *World) Update(dt float64) {
	w.systems.once(w, dt)
	if err := w.commands.Flush(w); err != nil {
		panic(err)
	}
}

// Commands returns the World's deferred command buffer.
func (w *World) Commands() *Commands {
	return w.commands
}

// Stats returns per-system execution statistics.
func (w *World) Stats() *SchedulerStats {
	return w.systems.getStats()
}
