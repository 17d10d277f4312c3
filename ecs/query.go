package ecs

// QueryEntities returns every alive entity holding a row in each of the given
// stores. With no types it returns every alive entity.
//
// The smallest requested store is enumerated and each candidate is probed
// against the others, after confirming it is alive. A type that has never had
// a store in this World makes the result empty. The result is a snapshot, so
// callers may mutate the World while walking it.
func (w *World) QueryEntities(types ...AnyComponentType) []EntityId {
	if len(types) == 0 {
		return w.entities.snapshot()
	}

	stores := make([]iComponentStore, len(types))
	base := 0
	for i, ct := range types {
		store := w.lookupStore(ct.Id())
		if store == nil {
			return []EntityId{}
		}
		stores[i] = store
		if store.Len() < stores[base].Len() {
			base = i
		}
	}

	candidates := stores[base].Ids()
	result := make([]EntityId, 0, len(candidates))
	for _, id := range candidates {
		if !w.entities.isAlive(id) {
			continue
		}
		if !presentInAll(stores, base, id) {
			continue
		}
		result = append(result, id)
	}
	return result
}

func presentInAll(stores []iComponentStore, skip int, id EntityId) bool {
	for i, store := range stores {
		if i == skip {
			continue
		}
		if !store.Has(id) {
			return false
		}
	}
	return true
}

// ForEach calls fn once per id returned by QueryEntities(types...). fn may add
// or remove components on, or destroy, the id it is visiting. Changes to other
// entities should go through Commands instead.
func (w *World) ForEach(types []AnyComponentType, fn func(id EntityId)) {
	for _, id := range w.QueryEntities(types...) {
		fn(id)
	}
}

// Types is a small convenience for building the slice ForEach expects.
func Types(types ...AnyComponentType) []AnyComponentType {
	return types
}
