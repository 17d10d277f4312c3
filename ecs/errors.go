package ecs

import "github.com/rotisserie/eris"

// ErrEntityNotAlive is returned when a component write targets an entity that
// was destroyed or never created. It signals a lifecycle bug in the caller.
var ErrEntityNotAlive = eris.New("ecs: entity not alive")

func entityNotAlive(id EntityId) error {
	return eris.Wrapf(ErrEntityNotAlive, "entity %d", id)
}

// Must returns v, panicking if err is non-nil. Systems use it so a write to a
// dead entity stops the frame instead of being dropped.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}
