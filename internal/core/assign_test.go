package core

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

type status string

type tagged []string

type embeddedBase struct {
	ID int
}

type embeddedPtr struct {
	Label string
}

type withEmbedded struct {
	embeddedBase
	*embeddedPtr

	Name string
	note string
}

func TestConvertValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   any
		to      reflect.Type
		want    any
		wantErr error
	}{
		{name: "assignable int", value: 4, to: reflect.TypeFor[int](), want: 4},
		{name: "int to uint8", value: 4, to: reflect.TypeFor[uint8](), want: uint8(4)},
		{name: "int overflows uint8", value: 256, to: reflect.TypeFor[uint8](), wantErr: ErrFieldType},
		{name: "negative int to uint", value: -1, to: reflect.TypeFor[uint](), wantErr: ErrFieldType},
		{name: "int to int8 overflow", value: -129, to: reflect.TypeFor[int8](), wantErr: ErrFieldType},
		{name: "uint to int", value: uint16(7), to: reflect.TypeFor[int64](), want: int64(7)},
		{name: "huge uint to int", value: uint64(math.MaxUint64), to: reflect.TypeFor[int](), wantErr: ErrFieldType},
		{name: "uint64 to uint8 overflow", value: uint64(300), to: reflect.TypeFor[uint8](), wantErr: ErrFieldType},
		{name: "int to float", value: 3, to: reflect.TypeFor[float64](), want: float64(3)},
		{name: "largest exact int to float32", value: 16777216, to: reflect.TypeFor[float32](), want: float32(16777216)},
		{name: "int loses precision in float32", value: 16777217, to: reflect.TypeFor[float32](), wantErr: ErrFieldType},
		{name: "int64 loses precision in float64", value: int64(1<<53 + 1), to: reflect.TypeFor[float64](), wantErr: ErrFieldType},
		{name: "min int64 to float64", value: int64(math.MinInt64), to: reflect.TypeFor[float64](), want: float64(math.MinInt64)},
		{name: "uint to float32", value: uint32(7), to: reflect.TypeFor[float32](), want: float32(7)},
		{name: "max uint64 to float64", value: uint64(math.MaxUint64), to: reflect.TypeFor[float64](), wantErr: ErrFieldType},
		{name: "whole float to int", value: 3.0, to: reflect.TypeFor[int](), want: 3},
		{name: "fractional float to int", value: 3.5, to: reflect.TypeFor[int](), wantErr: ErrFieldType},
		{name: "float to uint", value: 2.0, to: reflect.TypeFor[uint32](), want: uint32(2)},
		{name: "negative float to uint", value: -2.0, to: reflect.TypeFor[uint32](), wantErr: ErrFieldType},
		{name: "float64 to float32", value: 1.5, to: reflect.TypeFor[float32](), want: float32(1.5)},
		{name: "float64 overflows float32", value: math.MaxFloat64, to: reflect.TypeFor[float32](), wantErr: ErrFieldType},
		{name: "string to named string", value: "active", to: reflect.TypeFor[status](), want: status("active")},
		{name: "slice to named slice", value: []string{"a"}, to: reflect.TypeFor[tagged](), want: tagged{"a"}},
		{name: "decoded slice to typed slice", value: []any{1, 2}, to: reflect.TypeFor[[]uint8](), want: []uint8{1, 2}},
		{name: "decoded slice element mismatch", value: []any{1, "b"}, to: reflect.TypeFor[[]int](), wantErr: ErrFieldType},
		{name: "int is not a string", value: 65, to: reflect.TypeFor[string](), wantErr: ErrFieldType},
		{name: "string is not a bool", value: "true", to: reflect.TypeFor[bool](), wantErr: ErrFieldType},
		{name: "nil pointer", value: nil, to: reflect.TypeFor[*int](), want: (*int)(nil)},
		{name: "nil slice", value: nil, to: reflect.TypeFor[[]int](), want: []int(nil)},
		{name: "nil int", value: nil, to: reflect.TypeFor[int](), wantErr: ErrFieldType},
		{name: "value into interface", value: 3, to: reflect.TypeFor[any](), want: 3},
		{name: "error into error interface", value: errTest, to: reflect.TypeFor[error](), want: errTest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := convertValue(tt.value, tt.to)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected error %v, got %v", tt.wantErr, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			holder := reflect.New(tt.to).Elem()
			holder.Set(got)

			if !reflect.DeepEqual(holder.Interface(), tt.want) {
				t.Errorf("expected %#v, got %#v", tt.want, holder.Interface())
			}
		})
	}
}

func TestFieldIndex(t *testing.T) {
	t.Parallel()

	typ := reflect.TypeFor[withEmbedded]()

	tests := []struct {
		name      string
		field     string
		wantIndex []int
		wantErr   bool
	}{
		{name: "direct field", field: "Name", wantIndex: []int{2}},
		{name: "promoted through value embedding", field: "ID", wantIndex: []int{0, 0}},
		{name: "promoted through pointer embedding", field: "Label", wantErr: true},
		{name: "unexported field", field: "note", wantErr: true},
		{name: "missing field", field: "Missing", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			index, _, err := fieldIndex(typ, tt.field)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownField) {
					t.Fatalf("expected ErrUnknownField, got %v", err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(index, tt.wantIndex) {
				t.Errorf("expected index %v, got %v", tt.wantIndex, index)
			}
		})
	}
}

// unexported variables.
var (
	errTest = errors.New("test error")
)
