package systems

import (
	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
)

var colorQuery = ecs.Types(components.ColorCycleType)

// ColorCycle advances every ColorCycle clock by dt and tints the entity's node
// when it has one that implements components.Tintable.
func ColorCycle(w *ecs.World, dt float64) {
	w.ForEach(colorQuery, func(id ecs.EntityId) {
		c, _ := ecs.GetComponent(w, id, components.ColorCycleType)
		c.Elapsed += dt
		ecs.Must(ecs.UpsertComponent(w, id, components.ColorCycleType, c))

		ref, ok := ecs.GetComponent(w, id, components.RenderHandleRefType)
		if !ok {
			return
		}
		if node, ok := ref.Node.(components.Tintable); ok {
			node.SetHSL(c.CurrentHue(), c.Saturation, c.Lightness)
		}
	})
}
