package debugui

import (
	"reflect"
	"sync"
)

// fieldInfo describes one exported struct field as the inspector sees it.
type fieldInfo struct {
	Name  string
	Index int
	Kind  reflect.Kind
	// Pointer is set when the field holds a pointer; Kind is then the kind of
	// the pointee.
	Pointer bool
	// ReadOnly fields are shown but never offered an input widget.
	ReadOnly bool
}

// fieldCache memoises exported-field layouts per component type. Component
// rows are inspected every frame, so the struct walk happens once per type.
type fieldCache struct {
	mu     sync.RWMutex
	byType map[reflect.Type][]fieldInfo
}

func newFieldCache() *fieldCache {
	return &fieldCache{byType: make(map[reflect.Type][]fieldInfo)}
}

func (c *fieldCache) fields(t reflect.Type) []fieldInfo {
	c.mu.RLock()
	cached, ok := c.byType[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.byType[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			ft := field.Type
			pointer := ft.Kind() == reflect.Ptr
			if pointer {
				ft = ft.Elem()
			}

			fields = append(fields, fieldInfo{
				Name:     field.Name,
				Index:    i,
				Kind:     ft.Kind(),
				Pointer:  pointer,
				ReadOnly: readOnlyKind(ft.Kind()),
			})
		}
	}

	c.byType[t] = fields
	return fields
}

// readOnlyKind reports kinds the inspector can display but not edit.
// Interfaces cover handles such as render nodes owned by the host.
func readOnlyKind(k reflect.Kind) bool {
	switch k {
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	}
	return false
}

func isNumeric(k reflect.Kind) bool {
	return (k >= reflect.Int && k <= reflect.Uint64) || k == reflect.Float32 || k == reflect.Float64
}

// convertible is reflect's CanConvert without the integer to string rune
// conversion, which no inspector widget means.
func convertible(from reflect.Value, to reflect.Type) bool {
	if isNumeric(from.Kind()) && to.Kind() == reflect.String {
		return false
	}
	if readOnlyKind(to.Kind()) {
		return false
	}
	return from.CanConvert(to)
}

var inspectorFields = newFieldCache()
