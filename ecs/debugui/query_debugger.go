package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orbit/ecs"
)

// QueryDebugger runs QueryEntities over a user-picked set of component types.
type QueryDebugger struct {
	selected map[ecs.ComponentId]bool
	maxShown int
}

func NewQueryDebugger() *QueryDebugger {
	return &QueryDebugger{
		selected: make(map[ecs.ComponentId]bool),
		maxShown: 50,
	}
}

func (qd *QueryDebugger) Title() string {
	return "Query Debugger"
}

func (qd *QueryDebugger) Render(w *ecs.World, _ float64) {
	if !imgui.BeginV(qd.Title(), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text("Select Component Types:")
	imgui.Separator()

	if imgui.Button("Clear All") {
		qd.Clear()
	}

	for _, ct := range w.ComponentTypes() {
		selected := qd.selected[ct.Id()]
		label := fmt.Sprintf("%s##%d", ct.Name(), ct.Id())
		if imgui.Checkbox(label, &selected) {
			qd.Toggle(ct, selected)
		}
	}

	imgui.Separator()

	types := qd.SelectedTypes(w)
	if len(types) == 0 {
		imgui.Text("No component types selected")
		imgui.End()
		return
	}

	matches := w.QueryEntities(types...)
	names := make([]string, len(types))
	for i, ct := range types {
		names[i] = ct.Name()
	}
	imgui.Text(fmt.Sprintf("Query: %s", strings.Join(names, " & ")))
	imgui.Text(fmt.Sprintf("Matching Entities: %d", len(matches)))

	if imgui.TreeNodeStr("Entities") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("QueryEntityTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Entity ID")
			imgui.TableSetupColumn("All Components")
			imgui.TableHeadersRow()

			for i, id := range matches {
				if i >= qd.maxShown {
					break
				}
				imgui.TableNextRow()

				imgui.TableSetColumnIndex(0)
				imgui.Text(fmt.Sprintf("%d", id))

				imgui.TableSetColumnIndex(1)
				all := w.ComponentTypesOf(id)
				componentNames := make([]string, len(all))
				for j, ct := range all {
					componentNames[j] = ct.Name()
				}
				imgui.Text(fmt.Sprintf("%v", componentNames))
			}

			imgui.EndTable()
		}
		if len(matches) > qd.maxShown {
			imgui.Text(fmt.Sprintf("... and %d more", len(matches)-qd.maxShown))
		}
		imgui.TreePop()
	}

	imgui.End()
}

func (qd *QueryDebugger) Toggle(ct ecs.AnyComponentType, selected bool) {
	if selected {
		qd.selected[ct.Id()] = true
	} else {
		delete(qd.selected, ct.Id())
	}
}

func (qd *QueryDebugger) Clear() {
	qd.selected = make(map[ecs.ComponentId]bool)
}

// SelectedTypes resolves the selection against the World's stores, in store
// creation order.
func (qd *QueryDebugger) SelectedTypes(w *ecs.World) []ecs.AnyComponentType {
	types := make([]ecs.AnyComponentType, 0, len(qd.selected))
	for _, ct := range w.ComponentTypes() {
		if qd.selected[ct.Id()] {
			types = append(types, ct)
		}
	}
	return types
}
