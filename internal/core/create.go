package core

import (
	"fmt"
	"reflect"
)

// TestReporter is the minimal interface factori needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Functions - Public

// Attributes returns the evaluated attributes of one instance of T, without building
// it. Transient attributes are left out.
func Attributes[T any](opts ...Option) (Attrs, error) {
	return AttributesIn[T](DefaultRegistry(), opts...)
}

// AttributesIn is Attributes on reg.
func AttributesIn[T any](reg *Registry, opts ...Option) (Attrs, error) {
	_, res, err := prepare[T](reg, opts)
	if err != nil {
		return nil, err
	}

	attrs := res.Evaluate()
	for _, field := range res.Transients {
		delete(attrs, field.Name)
	}

	return attrs, nil
}

// Create builds one T from its registered factory. Mixins selected with With apply
// over the defaults, and fields passed with Set apply over both.
func Create[T any](opts ...Option) (T, error) {
	return CreateIn[T](DefaultRegistry(), opts...)
}

// CreateIn is Create on reg.
func CreateIn[T any](reg *Registry, opts ...Option) (T, error) {
	def, res, err := prepare[T](reg, opts)
	if err != nil {
		var zero T

		return zero, err
	}

	return def.Build(res)
}

// CreateVec builds count independent instances of T. Every element evaluates its lazy
// and derived values afresh, in sequence order. A count of zero yields an empty slice.
func CreateVec[T any](count int, opts ...Option) ([]T, error) {
	return CreateVecIn[T](DefaultRegistry(), count, opts...)
}

// CreateVecIn is CreateVec on reg.
func CreateVecIn[T any](reg *Registry, count int, opts ...Option) ([]T, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d instances of %s", ErrNegativeCount, count, reflect.TypeFor[T]())
	}

	def, res, err := prepare[T](reg, opts)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0, count)

	for i := range count {
		item, err := def.Build(res)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}

		items = append(items, item)
	}

	return items, nil
}

// MustCreate is Create, panicking on error.
func MustCreate[T any](opts ...Option) T {
	item, err := Create[T](opts...)
	if err != nil {
		panic(err)
	}

	return item
}

// MustCreateVec is CreateVec, panicking on error.
func MustCreateVec[T any](count int, opts ...Option) []T {
	items, err := CreateVec[T](count, opts...)
	if err != nil {
		panic(err)
	}

	return items
}

// New is Create for tests: failures are reported through t.Fatalf.
func New[T any](t TestReporter, opts ...Option) T {
	t.Helper()

	item, err := Create[T](opts...)
	if err != nil {
		t.Fatalf("factori: %v", err)
	}

	return item
}

// NewVec is CreateVec for tests: failures are reported through t.Fatalf.
func NewVec[T any](t TestReporter, count int, opts ...Option) []T {
	t.Helper()

	items, err := CreateVec[T](count, opts...)
	if err != nil {
		t.Fatalf("factori: %v", err)
	}

	return items
}

// Build evaluates res and constructs one T from the resulting attributes. With a
// builder, the builder receives every attribute; without one, each field of res.Fields
// is assigned to the matching struct field and transient attributes are dropped.
func (def *Definition[T]) Build(res Resolution) (T, error) {
	var item T

	attrs := res.Evaluate()

	if def.builder != nil {
		built, err := def.builder(attrs)
		if err != nil {
			return item, fmt.Errorf("%w: %s: %w", ErrBuilder, def.typ, err)
		}

		return built, nil
	}

	target := reflect.ValueOf(&item).Elem()

	for _, field := range res.Fields {
		index, fieldType, err := fieldIndex(def.typ, field.Name)
		if err != nil {
			return item, err
		}

		value, err := convertValue(attrs[field.Name], fieldType)
		if err != nil {
			return item, fmt.Errorf("%s.%s: %w", def.typ, field.Name, err)
		}

		target.FieldByIndex(index).Set(value)
	}

	return item, nil
}

// Functions - Private

func prepare[T any](reg *Registry, opts []Option) (*Definition[T], Resolution, error) {
	def, err := LookupDefinition[T](reg)
	if err != nil {
		return nil, Resolution{}, err
	}

	res, err := def.Resolve(NewRequest(opts...))
	if err != nil {
		return nil, Resolution{}, err
	}

	return def, res, nil
}
