package systems

import (
	"math"

	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
)

var (
	spinQuery = ecs.Types(components.TransformType, components.SpinType)
	bobQuery  = ecs.Types(components.TransformType, components.BobType)
)

// Spin adds Spin.Speed*dt to every axis of Transform.Rotation.
func Spin(w *ecs.World, dt float64) {
	w.ForEach(spinQuery, func(id ecs.EntityId) {
		t, _ := ecs.GetComponent(w, id, components.TransformType)
		s, _ := ecs.GetComponent(w, id, components.SpinType)

		for axis := range t.Rotation {
			t.Rotation[axis] += s.Speed[axis] * dt
		}

		ecs.Must(ecs.UpsertComponent(w, id, components.TransformType, t))
	})
}

// Bob advances each Bob's clock by dt and sets Transform.Position.Y on the wave.
func Bob(w *ecs.World, dt float64) {
	w.ForEach(bobQuery, func(id ecs.EntityId) {
		t, _ := ecs.GetComponent(w, id, components.TransformType)
		b, _ := ecs.GetComponent(w, id, components.BobType)

		b.Elapsed += dt
		t.Position[1] = b.BaseY + math.Sin(b.Elapsed*b.Frequency+b.Phase)*b.Amplitude

		ecs.Must(ecs.UpsertComponent(w, id, components.BobType, b))
		ecs.Must(ecs.UpsertComponent(w, id, components.TransformType, t))
	})
}
