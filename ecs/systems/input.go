package systems

import (
	"maps"

	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
)

// Key codes read by the movement system.
const (
	KeyForward = "KeyW"
	KeyBack    = "KeyS"
	KeyLeft    = "KeyA"
	KeyRight   = "KeyD"
)

// InputAccumulator collects raw device events between frames. The host feeds it
// events as they arrive; Flush publishes a snapshot into the World.
type InputAccumulator struct {
	keys    map[string]bool
	buttons map[int]bool
	delta   [2]float64
	wheel   float64
}

// NewInputAccumulator returns an accumulator with nothing pressed.
func NewInputAccumulator() *InputAccumulator {
	return &InputAccumulator{
		keys:    make(map[string]bool),
		buttons: make(map[int]bool),
	}
}

func (a *InputAccumulator) KeyDown(code string) {
	a.keys[code] = true
}

// KeyUp records an explicit false rather than forgetting the key.
func (a *InputAccumulator) KeyUp(code string) {
	a.keys[code] = false
}

func (a *InputAccumulator) ButtonDown(button int) {
	a.buttons[button] = true
}

func (a *InputAccumulator) ButtonUp(button int) {
	a.buttons[button] = false
}

// PointerMove accumulates pointer travel, but only while a button is held.
func (a *InputAccumulator) PointerMove(dx, dy float64) {
	for _, pressed := range a.buttons {
		if pressed {
			a.delta[0] += dx
			a.delta[1] += dy
			return
		}
	}
}

// Wheel accumulates wheel travel. Positive values scroll down/away.
func (a *InputAccumulator) Wheel(dy float64) {
	a.wheel += dy
}

// Snapshot returns the current accumulated state without resetting it.
func (a *InputAccumulator) Snapshot() components.InputState {
	return components.InputState{
		Keys: maps.Clone(a.keys),
		Mouse: components.MouseState{
			Buttons: maps.Clone(a.buttons),
			Delta:   a.delta,
			Wheel:   a.wheel,
		},
	}
}

// Flush writes the snapshot onto entity's InputState and zeroes the per-frame
// accumulators.
func (a *InputAccumulator) Flush(w *ecs.World, entity ecs.EntityId) error {
	if _, err := ecs.UpsertComponent(w, entity, components.InputStateType, a.Snapshot()); err != nil {
		return err
	}
	a.delta = [2]float64{}
	a.wheel = 0
	return nil
}

// NewInputEntity creates the singleton entity that carries InputState and
// gives it an empty snapshot.
func NewInputEntity(w *ecs.World) ecs.EntityId {
	id := w.CreateEntity()
	ecs.Must(ecs.UpsertComponent(w, id, components.InputStateType, components.InputState{
		Keys:  map[string]bool{},
		Mouse: components.MouseState{Buttons: map[int]bool{}},
	}))
	return id
}

// IngestInput returns a system that flushes acc into entity's InputState. It
// should be registered before any system that reads input.
func IngestInput(acc *InputAccumulator, entity ecs.EntityId) ecs.NamedSystem {
	return ecs.NewSystem("ingest-input", func(w *ecs.World, _ float64) {
		if err := acc.Flush(w, entity); err != nil {
			panic(err)
		}
	})
}

func currentInput(w *ecs.World) (components.InputState, bool) {
	_, input, ok := ecs.Singleton(w, components.InputStateType)
	return input, ok
}
