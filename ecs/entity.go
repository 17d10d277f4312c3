package ecs

import "github.com/kamstrup/intmap"

// EntityId is an opaque handle. Ids are handed out in strictly increasing
// order and never reused within a World.
type EntityId uint64

// NoEntity is the sentinel that never names a live entity.
const NoEntity EntityId = 0

// entityRegistry allocates ids and tracks which are alive. Alive ids are kept in
// a sparse set so they can be enumerated in a stable order.
type entityRegistry struct {
	next  EntityId
	index *intmap.Map[EntityId, int]
	alive []EntityId
}

func newEntityRegistry(capacity int) *entityRegistry {
	return &entityRegistry{
		next:  NoEntity + 1,
		index: intmap.New[EntityId, int](capacity),
		alive: make([]EntityId, 0, capacity),
	}
}

func (r *entityRegistry) create() EntityId {
	id := r.next
	r.next++
	r.index.Put(id, len(r.alive))
	r.alive = append(r.alive, id)
	return id
}

// destroy reports whether id was alive.
func (r *entityRegistry) destroy(id EntityId) bool {
	pos, ok := r.index.Get(id)
	if !ok {
		return false
	}
	r.index.Del(id)

	last := len(r.alive) - 1
	if pos != last {
		moved := r.alive[last]
		r.alive[pos] = moved
		r.index.Put(moved, pos)
	}
	r.alive = r.alive[:last]
	return true
}

func (r *entityRegistry) isAlive(id EntityId) bool {
	return r.index.Has(id)
}

func (r *entityRegistry) count() int {
	return len(r.alive)
}

func (r *entityRegistry) snapshot() []EntityId {
	ids := make([]EntityId, len(r.alive))
	copy(ids, r.alive)
	return ids
}
