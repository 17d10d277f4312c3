package systems

import (
	"github.com/plus3/orbit/ecs"
	"github.com/plus3/orbit/ecs/components"
)

var renderQuery = ecs.Types(components.TransformType, components.RenderHandleRefType)

// RenderSync copies each entity's Transform onto its render node. Entities whose
// node has not been attached yet are skipped.
func RenderSync(w *ecs.World, _ float64) {
	w.ForEach(renderQuery, func(id ecs.EntityId) {
		ref, _ := ecs.GetComponent(w, id, components.RenderHandleRefType)
		if ref.Node == nil {
			return
		}
		t, _ := ecs.GetComponent(w, id, components.TransformType)

		ref.Node.SetPosition(t.Position)
		ref.Node.SetRotation(t.Rotation)
		ref.Node.SetScale(t.Scale)
	})
}
