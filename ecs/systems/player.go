package systems

import (
	"math"

	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
)

var playerQuery = ecs.Types(components.TransformType, components.PlayerControlledType)

// Move returns the WASD movement system. Movement is relative to each entity's
// yaw and stays on the horizontal plane.
func Move(tuning Tuning) ecs.NamedSystem {
	return ecs.NewSystem("move", func(w *ecs.World, dt float64) {
		input, ok := currentInput(w)
		if !ok {
			return
		}

		var moveX, moveZ float64
		if input.Keys[KeyForward] {
			moveZ -= 1
		}
		if input.Keys[KeyBack] {
			moveZ += 1
		}
		if input.Keys[KeyLeft] {
			moveX -= 1
		}
		if input.Keys[KeyRight] {
			moveX += 1
		}
		if moveX == 0 && moveZ == 0 {
			return
		}

		length := math.Hypot(moveX, moveZ)
		moveX /= length
		moveZ /= length
		step := tuning.MoveSpeed * dt

		w.ForEach(playerQuery, func(id ecs.EntityId) {
			t, _ := ecs.GetComponent(w, id, components.TransformType)

			sin, cos := math.Sincos(t.Rotation[1])
			localX := moveX*cos - moveZ*sin
			localZ := moveX*sin + moveZ*cos

			t.Position[0] += localX * step
			t.Position[2] += localZ * step

			ecs.Must(ecs.UpsertComponent(w, id, components.TransformType, t))
		})
	})
}

// Rotate returns the drag-to-look system. Pitch is clamped to
// ±tuning.PitchLimit; roll is left alone.
func Rotate(tuning Tuning) ecs.NamedSystem {
	return ecs.NewSystem("rotate", func(w *ecs.World, _ float64) {
		input, ok := currentInput(w)
		if !ok || !input.AnyButtonHeld() {
			return
		}

		dx, dy := input.Mouse.Delta[0], input.Mouse.Delta[1]
		if dx == 0 && dy == 0 {
			return
		}

		w.ForEach(playerQuery, func(id ecs.EntityId) {
			t, _ := ecs.GetComponent(w, id, components.TransformType)

			pitch := t.Rotation[0] - dy*tuning.RotateSensitivity
			yaw := t.Rotation[1] - dx*tuning.RotateSensitivity
			pitch = math.Max(-tuning.PitchLimit, math.Min(tuning.PitchLimit, pitch))

			t.Rotation[0] = pitch
			t.Rotation[1] = yaw

			ecs.Must(ecs.UpsertComponent(w, id, components.TransformType, t))
		})
	})
}

// Scale returns the wheel zoom system. The factor exp(-wheel*sensitivity)
// composes multiplicatively, and each axis is clamped to [MinScale, MaxScale].
func Scale(tuning Tuning) ecs.NamedSystem {
	return ecs.NewSystem("scale", func(w *ecs.World, _ float64) {
		input, ok := currentInput(w)
		if !ok || input.Mouse.Wheel == 0 {
			return
		}

		factor := math.Exp(-input.Mouse.Wheel * tuning.WheelSensitivity)

		w.ForEach(playerQuery, func(id ecs.EntityId) {
			t, _ := ecs.GetComponent(w, id, components.TransformType)

			for axis := range t.Scale {
				scaled := t.Scale[axis] * factor
				t.Scale[axis] = math.Min(tuning.MaxScale, math.Max(tuning.MinScale, scaled))
			}

			ecs.Must(ecs.UpsertComponent(w, id, components.TransformType, t))
		})
	})
}
