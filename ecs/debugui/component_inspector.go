package debugui

import (
	"fmt"
	"reflect"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/orbit/ecs"
	"github.com/rotisserie/eris"
)

// Selection supplies the entity the inspector shows.
type Selection interface {
	GetSelectedEntity() ecs.EntityId
}

// ComponentInspector shows, and lets the user edit, every component of the
// selected entity. Edits are written back with SetComponent.
type ComponentInspector struct {
	selection Selection
}

func NewComponentInspector(selection Selection) *ComponentInspector {
	return &ComponentInspector{selection: selection}
}

func (ci *ComponentInspector) Title() string {
	return "Component Inspector"
}

func (ci *ComponentInspector) Render(w *ecs.World, _ float64) {
	if !imgui.BeginV(ci.Title(), nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	selectedEntityId := ci.selection.GetSelectedEntity()
	if selectedEntityId == ecs.NoEntity {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !w.IsAlive(selectedEntityId) {
		imgui.Text(fmt.Sprintf("Entity %d is no longer alive", selectedEntityId))
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", selectedEntityId))
	imgui.Separator()

	for _, ct := range w.ComponentTypesOf(selectedEntityId) {
		component, ok := w.Component(selectedEntityId, ct)
		if !ok {
			continue
		}

		if imgui.TreeNodeStr(ct.Name()) {
			if edited, changed := ci.renderComponent(component); changed {
				if err := w.SetComponent(selectedEntityId, ct, edited); err != nil {
					imgui.Text(err.Error())
				}
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderComponent draws component's fields on an addressable copy and returns
// the copy when any widget changed it.
func (ci *ComponentInspector) renderComponent(component any) (any, bool) {
	val := reflect.ValueOf(component)
	editable := reflect.New(val.Type()).Elem()
	editable.Set(val)

	changed := false
	if editable.Kind() == reflect.Struct {
		for _, field := range inspectorFields.fields(editable.Type()) {
			if ci.renderFieldInfo(editable, field) {
				changed = true
			}
		}
	} else if ci.renderField("value", editable, false) {
		changed = true
	}

	return editable.Interface(), changed
}

func (ci *ComponentInspector) renderFieldInfo(parent reflect.Value, field fieldInfo) bool {
	val := parent.Field(field.Index)
	if field.ReadOnly {
		imgui.Text(fmt.Sprintf("%s: %v", field.Name, val.Interface()))
		return false
	}
	if field.Pointer && !val.IsNil() {
		val = val.Elem()
	}
	return ci.renderField(field.Name, val, field.Pointer)
}

func (ci *ComponentInspector) renderField(name string, val reflect.Value, isPointer bool) bool {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return false
	}

	if isPointer && val.Kind() == reflect.Ptr && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return false
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			return assign(val, int64(v))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			return assign(val, uint64(v))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			return assign(val, float64(v))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			return assign(val, v)
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			return assign(val, v)
		}

	case reflect.Struct:
		changed := false
		if imgui.TreeNodeStr(name) {
			for _, nf := range inspectorFields.fields(val.Type()) {
				if ci.renderFieldInfo(val, nf) {
					changed = true
				}
			}
			imgui.TreePop()
		}
		return changed

	case reflect.Array:
		changed := false
		if imgui.TreeNodeStr(fmt.Sprintf("%s [%d]", name, val.Len())) {
			for i := 0; i < val.Len(); i++ {
				if ci.renderField(fmt.Sprintf("%s[%d]", name, i), val.Index(i), false) {
					changed = true
				}
			}
			imgui.TreePop()
		}
		return changed

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		if imgui.TreeNodeStr(fmt.Sprintf("%s: map[%d items]###%s", name, val.Len(), name)) {
			for _, line := range describeMap(val) {
				imgui.BulletText(line)
			}
			imgui.TreePop()
		}

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}

	return false
}

func describeMap(val reflect.Value) []string {
	lines := make([]string, 0, val.Len())
	iter := val.MapRange()
	for iter.Next() {
		lines = append(lines, fmt.Sprintf("%v: %v", iter.Key().Interface(), iter.Value().Interface()))
	}
	sort.Strings(lines)
	return lines
}

// assign converts value to target's type and stores it. It reports whether the
// stored value differs from the previous one.
func assign(target reflect.Value, value any) bool {
	if !target.CanSet() {
		return false
	}
	next := reflect.ValueOf(value)
	if !convertible(next, target.Type()) {
		return false
	}
	next = next.Convert(target.Type())
	if next.Equal(target) {
		return false
	}
	target.Set(next)
	return true
}

// SetField replaces the value found by following path through id's ct row and
// writes the row back. Each path step indexes a struct field or array element.
func SetField(w *ecs.World, id ecs.EntityId, ct ecs.AnyComponentType, path []int, value any) error {
	component, ok := w.Component(id, ct)
	if !ok {
		return eris.Errorf("entity %d has no %s", id, ct.Name())
	}

	editable := reflect.New(reflect.TypeOf(component)).Elem()
	editable.Set(reflect.ValueOf(component))

	target := editable
	for _, step := range path {
		if target.Kind() == reflect.Ptr {
			target = target.Elem()
		}
		switch target.Kind() {
		case reflect.Struct:
			if step < 0 || step >= target.NumField() {
				return eris.Errorf("field %d out of range for %s", step, target.Type())
			}
			target = target.Field(step)
		case reflect.Array:
			if step < 0 || step >= target.Len() {
				return eris.Errorf("index %d out of range for %s", step, target.Type())
			}
			target = target.Index(step)
		default:
			return eris.Errorf("cannot descend into %s", target.Type())
		}
	}

	if !target.CanSet() {
		return eris.Errorf("%s field is not settable", ct.Name())
	}
	next := reflect.ValueOf(value)
	if !convertible(next, target.Type()) {
		return eris.Errorf("cannot assign %T to %s", value, target.Type())
	}
	target.Set(next.Convert(target.Type()))

	return w.SetComponent(id, ct, editable.Interface())
}
