package ecs

import (
	"fmt"

	"github.com/kamstrup/intmap"
)

// iComponentStore is the uniform capability set the World uses to address a
// store without knowing its data shape.
type iComponentStore interface {
	Type() AnyComponentType
	Has(id EntityId) bool
	Delete(id EntityId)
	Len() int
	// Ids returns the dense id slice. Callers must not retain or modify it.
	Ids() []EntityId
	GetAny(id EntityId) (any, bool)
	SetAny(id EntityId, value any)
}

// componentStore is a sparse set of T keyed by entity id. Rows live densely in
// ids/values; index maps an entity to its row. Deletion swaps the last row into
// the hole, so enumeration order is insertion order perturbed only by deletes.
type componentStore[T any] struct {
	ct     ComponentType[T]
	index  *intmap.Map[EntityId, int]
	ids    []EntityId
	values []T
}

func newComponentStore[T any](ct ComponentType[T], capacity int) *componentStore[T] {
	return &componentStore[T]{
		ct:     ct,
		index:  intmap.New[EntityId, int](capacity),
		ids:    make([]EntityId, 0, capacity),
		values: make([]T, 0, capacity),
	}
}

func (s *componentStore[T]) Type() AnyComponentType {
	return s.ct
}

// Set inserts or overwrites the row for id.
func (s *componentStore[T]) Set(id EntityId, value T) {
	if row, ok := s.index.Get(id); ok {
		s.values[row] = value
		return
	}
	s.index.Put(id, len(s.ids))
	s.ids = append(s.ids, id)
	s.values = append(s.values, value)
}

// Get returns a copy of the row for id.
func (s *componentStore[T]) Get(id EntityId) (T, bool) {
	row, ok := s.index.Get(id)
	if !ok {
		var zero T
		return zero, false
	}
	return s.values[row], true
}

func (s *componentStore[T]) Has(id EntityId) bool {
	return s.index.Has(id)
}

func (s *componentStore[T]) Delete(id EntityId) {
	row, ok := s.index.Get(id)
	if !ok {
		return
	}
	s.index.Del(id)

	last := len(s.ids) - 1
	if row != last {
		moved := s.ids[last]
		s.ids[row] = moved
		s.values[row] = s.values[last]
		s.index.Put(moved, row)
	}

	var zero T
	s.values[last] = zero
	s.ids = s.ids[:last]
	s.values = s.values[:last]
}

func (s *componentStore[T]) Len() int {
	return len(s.ids)
}

func (s *componentStore[T]) Ids() []EntityId {
	return s.ids
}

func (s *componentStore[T]) GetAny(id EntityId) (any, bool) {
	v, ok := s.Get(id)
	if !ok {
		return nil, false
	}
	return v, true
}

// SetAny accepts either T or *T. Any other type is a programming error.
func (s *componentStore[T]) SetAny(id EntityId, value any) {
	switch v := value.(type) {
	case T:
		s.Set(id, v)
	case *T:
		s.Set(id, *v)
	default:
		panic(fmt.Sprintf("ecs: cannot store %T in component %q", value, s.ct.name))
	}
}
