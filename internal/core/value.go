package core

import (
	"fmt"
	"reflect"
	"sort"
)

// Attrs holds the evaluated attributes of a single instance, keyed by field name.
// Transient attributes are included; they are dropped when the instance is built
// without a custom builder.
type Attrs map[string]any

// Names returns the attribute names in sorted order.
func (a Attrs) Names() []string {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Derived is a value computed from the other attributes of the same instance.
// Derived values run after every constant and lazy value of the instance, in
// declaration order (transient fields first), and see the attributes evaluated so far.
type Derived func(attrs Attrs) any

// Field is a single (name, value) pair in a default, transient or mixin block, or a
// call-site override. A Field is also an Option, so it can be passed to Create directly.
type Field struct {
	Name  string
	Value any
}

// Lazy is a value evaluated once per constructed instance.
type Lazy func() any

// Functions - Public

// Get returns the attribute called name as a V. It returns the zero V when the attribute
// is absent or nil, and panics when it holds a value of another type.
func Get[V any](attrs Attrs, name string) V {
	value, ok := Lookup[V](attrs, name)
	if ok {
		return value
	}

	raw, present := attrs[name]
	if present && raw != nil {
		panic(fmt.Sprintf("attribute %q holds %T, not %T", name, raw, value))
	}

	return value
}

// GetAs returns the attribute called name converted to a V, with the same conversions
// applied when assigning a struct field: an int override reads as a uint8, a []any of
// decoded values reads as a typed slice. It returns the zero V when the attribute is
// absent or nil, and an ErrFieldType error when the value cannot be converted.
func GetAs[V any](attrs Attrs, name string) (V, error) {
	var zero V

	raw, present := attrs[name]
	if !present || raw == nil {
		return zero, nil
	}

	converted, err := convertValue(raw, reflect.TypeFor[V]())
	if err != nil {
		return zero, fmt.Errorf("attribute %q: %w", name, err)
	}

	value, _ := converted.Interface().(V)

	return value, nil
}

// Lookup returns the attribute called name as a V, and whether it was present with that type.
func Lookup[V any](attrs Attrs, name string) (V, bool) {
	value, ok := attrs[name].(V)

	return value, ok
}

// Set returns a Field for use in mixins and as a call-site override.
func Set(name string, value any) Field {
	return Field{Name: name, Value: value}
}

// Functions - Private

// evaluate returns the value a non-derived field takes for one instance. Constants are
// deep-copied so each instance owns its slices, maps and pointees.
func evaluate(value any) any {
	if lazy, ok := value.(Lazy); ok {
		return lazy()
	}

	return cloneValue(value)
}

func isDeferred(value any) bool {
	switch value.(type) {
	case Lazy, Derived:
		return true
	default:
		return false
	}
}
