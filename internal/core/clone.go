package core

import (
	"reflect"
)

// Functions - Private

// cloneValue returns a deep copy of a constant so instances never share slices, maps or
// pointees. Funcs and chans are kept as they are. Pointers to structs with unexported
// fields are opaque handles (errors, regexps, locations) and keep their identity.
func cloneValue(value any) any {
	if value == nil {
		return nil
	}

	return deepCopy(reflect.ValueOf(value), make(map[pointerKey]reflect.Value)).Interface()
}

type pointerKey struct {
	addr uintptr
	typ  reflect.Type
}

//nolint:cyclop // One branch per container kind
func deepCopy(value reflect.Value, seen map[pointerKey]reflect.Value) reflect.Value {
	switch value.Kind() {
	case reflect.Slice:
		if value.IsNil() {
			return value
		}

		out := reflect.MakeSlice(value.Type(), value.Len(), value.Len())
		for i := range value.Len() {
			out.Index(i).Set(deepCopy(value.Index(i), seen))
		}

		return out
	case reflect.Map:
		if value.IsNil() {
			return value
		}

		out := reflect.MakeMapWithSize(value.Type(), value.Len())

		iter := value.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), deepCopy(iter.Value(), seen))
		}

		return out
	case reflect.Array:
		out := reflect.New(value.Type()).Elem()
		for i := range value.Len() {
			out.Index(i).Set(deepCopy(value.Index(i), seen))
		}

		return out
	case reflect.Pointer:
		if value.IsNil() || isOpaque(value.Type().Elem()) {
			return value
		}

		key := pointerKey{addr: value.Pointer(), typ: value.Type()}
		if copied, ok := seen[key]; ok {
			return copied
		}

		out := reflect.New(value.Type().Elem())
		seen[key] = out
		out.Elem().Set(deepCopy(value.Elem(), seen))

		return out
	case reflect.Struct:
		out := reflect.New(value.Type()).Elem()
		out.Set(value)

		for i := range value.NumField() {
			if out.Field(i).CanSet() {
				out.Field(i).Set(deepCopy(value.Field(i), seen))
			}
		}

		return out
	case reflect.Interface:
		if value.IsNil() {
			return value
		}

		out := reflect.New(value.Type()).Elem()
		out.Set(deepCopy(value.Elem(), seen))

		return out
	default:
		return value
	}
}

func isOpaque(typ reflect.Type) bool {
	if typ.Kind() != reflect.Struct {
		return false
	}

	for i := range typ.NumField() {
		if !typ.Field(i).IsExported() {
			return true
		}
	}

	return false
}
