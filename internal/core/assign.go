package core

import (
	"fmt"
	"math"
	"reflect"
)

// Functions - Private

// convertValue turns value into a reflect.Value that can be stored in a field of type to.
// Assignable values pass through. Numbers convert between numeric kinds when the value
// fits, and values convert to named types of the same kind. nil becomes the zero value
// of nillable types.
//
//nolint:cyclop // Kind dispatch is inherent to the conversion rules
func convertValue(value any, to reflect.Type) (reflect.Value, error) {
	if value == nil {
		if isNillable(to.Kind()) {
			return reflect.Zero(to), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrFieldType, to)
	}

	from := reflect.ValueOf(value)
	if from.Type().AssignableTo(to) {
		return from, nil
	}

	if isNumeric(from.Kind()) && isNumeric(to.Kind()) {
		return convertNumber(from, to)
	}

	if from.Kind() == to.Kind() && from.Type().ConvertibleTo(to) {
		return from.Convert(to), nil
	}

	if from.Kind() == reflect.Slice && to.Kind() == reflect.Slice {
		return convertSlice(from, to)
	}

	return reflect.Value{}, fmt.Errorf("%w: %T cannot be used as %s", ErrFieldType, value, to)
}

//nolint:cyclop // One branch per source/target numeric family
func convertNumber(from reflect.Value, to reflect.Type) (reflect.Value, error) {
	target := reflect.New(to).Elem()
	overflow := fmt.Errorf("%w: %v overflows %s", ErrFieldType, from.Interface(), to)

	switch {
	case isInt(from.Kind()):
		n := from.Int()

		switch {
		case isInt(to.Kind()):
			if target.OverflowInt(n) {
				return reflect.Value{}, overflow
			}
		case isUint(to.Kind()):
			if n < 0 || target.OverflowUint(uint64(n)) {
				return reflect.Value{}, overflow
			}
		case !intFitsFloat(n, to.Kind()):
			return reflect.Value{}, inexact(from, to)
		}
	case isUint(from.Kind()):
		n := from.Uint()

		switch {
		case isInt(to.Kind()):
			if n > math.MaxInt64 || target.OverflowInt(int64(n)) {
				return reflect.Value{}, overflow
			}
		case isUint(to.Kind()):
			if target.OverflowUint(n) {
				return reflect.Value{}, overflow
			}
		case !uintFitsFloat(n, to.Kind()):
			return reflect.Value{}, inexact(from, to)
		}
	default:
		f := from.Float()

		switch {
		case isFloat(to.Kind()):
			if target.OverflowFloat(f) {
				return reflect.Value{}, overflow
			}
		case f != math.Trunc(f):
			return reflect.Value{}, fmt.Errorf("%w: %v is not a whole number for %s", ErrFieldType, f, to)
		case isInt(to.Kind()):
			if f < math.MinInt64 || f >= math.MaxInt64 || target.OverflowInt(int64(f)) {
				return reflect.Value{}, overflow
			}
		default:
			if f < 0 || f >= math.MaxUint64 || target.OverflowUint(uint64(f)) {
				return reflect.Value{}, overflow
			}
		}
	}

	return from.Convert(to), nil
}

// convertSlice converts each element of from, so decoded []any data fits typed slices.
func convertSlice(from reflect.Value, to reflect.Type) (reflect.Value, error) {
	if from.IsNil() {
		return reflect.Zero(to), nil
	}

	out := reflect.MakeSlice(to, from.Len(), from.Len())

	for i := range from.Len() {
		elem, err := convertValue(from.Index(i).Interface(), to.Elem())
		if err != nil {
			return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
		}

		out.Index(i).Set(elem)
	}

	return out, nil
}

// fieldIndex finds the exported field called name on the struct type typ. Promoted fields
// are accepted unless they are reached through an embedded pointer.
func fieldIndex(typ reflect.Type, name string) ([]int, reflect.Type, error) {
	field, ok := typ.FieldByName(name)
	if !ok || !field.IsExported() {
		return nil, nil, fmt.Errorf("%w: %s has no exported field %q", ErrUnknownField, typ, name)
	}

	current := typ
	for _, i := range field.Index[:len(field.Index)-1] {
		current = current.Field(i).Type
		if current.Kind() != reflect.Struct {
			return nil, nil, fmt.Errorf(
				"%w: %s.%s is promoted through a pointer and needs a builder",
				ErrUnknownField, typ, name,
			)
		}
	}

	return field.Index, field.Type, nil
}

func inexact(from reflect.Value, to reflect.Type) error {
	return fmt.Errorf("%w: %v cannot be represented exactly as %s", ErrFieldType, from.Interface(), to)
}

// intFitsFloat reports whether n survives a round trip through a float of kind.
func intFitsFloat(n int64, kind reflect.Kind) bool {
	f := narrowFloat(float64(n), kind)

	return f >= math.MinInt64 && f < math.MaxInt64 && int64(f) == n
}

func narrowFloat(f float64, kind reflect.Kind) float64 {
	if kind == reflect.Float32 {
		return float64(float32(f))
	}

	return f
}

func isFloat(kind reflect.Kind) bool {
	return kind == reflect.Float32 || kind == reflect.Float64
}

func isInt(kind reflect.Kind) bool {
	return kind >= reflect.Int && kind <= reflect.Int64
}

func isNillable(kind reflect.Kind) bool {
	switch kind {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return true
	default:
		return false
	}
}

func isNumeric(kind reflect.Kind) bool {
	return isInt(kind) || isUint(kind) || isFloat(kind)
}

func isUint(kind reflect.Kind) bool {
	return kind >= reflect.Uint && kind <= reflect.Uintptr
}

// uintFitsFloat reports whether n survives a round trip through a float of kind.
func uintFitsFloat(n uint64, kind reflect.Kind) bool {
	f := narrowFloat(float64(n), kind)

	return f < math.MaxUint64 && uint64(f) == n
}
