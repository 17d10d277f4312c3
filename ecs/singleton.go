package ecs

// Singleton returns the first alive entity holding a ct row along with a copy
// of that row. It is meant for component types that have at most one row, such
// as a per-frame input mailbox. ok is false when no such entity exists.
func Singleton[T any](w *World, ct ComponentType[T]) (id EntityId, value T, ok bool) {
	store := w.lookupStore(ct.Id())
	if store == nil {
		return NoEntity, value, false
	}

	typed := store.(*componentStore[T])
	for i, candidate := range typed.ids {
		if w.entities.isAlive(candidate) {
			return candidate, typed.values[i], true
		}
	}
	return NoEntity, value, false
}
