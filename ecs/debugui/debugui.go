// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Debug windows are ordinary entities; System renders them every frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orbit/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Window is a debug panel that draws itself against a World.
type Window interface {
	Title() string
	Render(w *ecs.World, dt float64)
}

// DebugWindow attaches a Window to an entity.
type DebugWindow struct {
	Window Window
}

var (
	ImguiItemType       = ecs.Define[ImguiItem]("ImguiItem")
	ImguiInputStateType = ecs.Define[ImguiInputState]("ImguiInputState")
	DebugWindowType     = ecs.Define[DebugWindow]("DebugWindow")
)

// System refreshes the ImguiInputState singleton and defers every ImguiItem and
// DebugWindow render until the World flushes its commands. The host must call
// BeginFrame before World.Update and EndFrame after it.
func System() ecs.NamedSystem {
	return ecs.NewSystem("imgui", func(w *ecs.World, dt float64) {
		if id, _, ok := ecs.Singleton(w, ImguiInputStateType); ok {
			io := imgui.CurrentIO()
			ecs.Must(ecs.UpsertComponent(w, id, ImguiInputStateType, ImguiInputState{
				WantCaptureMouse:    io.WantCaptureMouse(),
				WantCaptureKeyboard: io.WantCaptureKeyboard(),
			}))
		}

		queueRenders(w, dt)
	})
}

func queueRenders(w *ecs.World, dt float64) {
	w.ForEach(ecs.Types(ImguiItemType), func(id ecs.EntityId) {
		item, _ := ecs.GetComponent(w, id, ImguiItemType)
		if item.Render != nil {
			w.Commands().Defer(item.Render)
		}
	})

	w.ForEach(ecs.Types(DebugWindowType), func(id ecs.EntityId) {
		window, _ := ecs.GetComponent(w, id, DebugWindowType)
		if window.Window == nil {
			return
		}
		w.Commands().Defer(func() {
			window.Window.Render(w, dt)
		})
	})
}

// Windows groups the standard debug windows so callers can reach them after Spawn.
type Windows struct {
	Browser     *EntityBrowser
	Inspector   *ComponentInspector
	Stores      *StoreViewer
	Queries     *QueryDebugger
	Performance *PerformanceStats
}

// Spawn creates one entity per standard debug window plus the
// ImguiInputState singleton.
func Spawn(w *ecs.World) Windows {
	browser := NewEntityBrowser(100)
	windows := Windows{
		Browser:     browser,
		Inspector:   NewComponentInspector(browser),
		Stores:      NewStoreViewer(),
		Queries:     NewQueryDebugger(),
		Performance: NewPerformanceStats(120),
	}

	for _, window := range []Window{windows.Browser, windows.Inspector, windows.Stores, windows.Queries, windows.Performance} {
		id := w.CreateEntity()
		ecs.Must(ecs.AddComponent(w, id, DebugWindowType, DebugWindow{Window: window}))
	}

	id := w.CreateEntity()
	ecs.Must(ecs.AddComponent(w, id, ImguiInputStateType, ImguiInputState{}))

	return windows
}

// WantsMouse reports whether ImGui claimed the mouse on the last frame.
func WantsMouse(w *ecs.World) bool {
	_, state, ok := ecs.Singleton(w, ImguiInputStateType)
	return ok && state.WantCaptureMouse
}

// WantsKeyboard reports whether ImGui claimed the keyboard on the last frame.
func WantsKeyboard(w *ecs.World) bool {
	_, state, ok := ecs.Singleton(w, ImguiInputStateType)
	return ok && state.WantCaptureKeyboard
}
