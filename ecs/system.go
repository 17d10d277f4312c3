package ecs

// System is a per-frame behaviour. Systems should keep no state of their own
// between frames; anything that must survive a frame belongs in a component.
type System interface {
	Execute(w *World, dt float64)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(w *World, dt float64)

func (f SystemFunc) Execute(w *World, dt float64) {
	f(w, dt)
}

// NamedSystem is implemented by systems that want a stable name in SchedulerStats.
type NamedSystem interface {
	System
	Name() string
}

type namedSystem struct {
	name string
	fn   SystemFunc
}

// NewSystem wraps fn with a name used for statistics and logging.
func NewSystem(name string, fn func(w *World, dt float64)) NamedSystem {
	return &namedSystem{name: name, fn: fn}
}

func (s *namedSystem) Execute(w *World, dt float64) {
	s.fn(w, dt)
}

func (s *namedSystem) Name() string {
	return s.name
}

// SystemHandle identifies one registration of a system. Registering the same
// system twice yields two handles.
type SystemHandle uint64
