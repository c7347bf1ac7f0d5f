// Package factori builds test fixtures from declared factories.
// A factory declares, once per type, default field values, named bundles of overrides
// (mixins) and transient attributes; tests then create fully-populated instances with
// only the overrides they care about.
//
//	factori.Define[Vehicle]().
//		Default("NumberWheels", 4).
//		Default("Electric", false).
//		Mixin("bike", factori.Set("NumberWheels", 2)).
//		MustRegister()
//
//	bike := factori.MustCreate[Vehicle](factori.With("bike"), factori.Set("Electric", true))
//
// This is the public API entry point. Implementation lives in internal/core.
package factori

import (
	"github.com/toejough/factori/internal/core"
)

// Attrs holds the evaluated attributes of a single instance, keyed by field name.
type Attrs = core.Attrs

// Definer declares a factory for T.
type Definer[T any] = core.Definer[T]

// Definition is a registered, immutable factory for T.
type Definition[T any] = core.Definition[T]

// Derived is a value computed from the other attributes of the same instance.
type Derived = core.Derived

// Field is a (name, value) pair in a block, a mixin, or a call-site override.
type Field = core.Field

// Lazy is a value evaluated once per constructed instance.
type Lazy = core.Lazy

// Option configures a single instantiation request.
type Option = core.Option

// Request is an instantiation request.
type Request = core.Request

// Resolution is the merged field mapping for one request.
type Resolution = core.Resolution

// TestReporter is the minimal interface factori needs from test frameworks.
type TestReporter = core.TestReporter

// Errors re-exported from internal/core.
var (
	ErrAlreadyRegistered = core.ErrAlreadyRegistered
	ErrBuilder           = core.ErrBuilder
	ErrDuplicateField    = core.ErrDuplicateField
	ErrDuplicateMixin    = core.ErrDuplicateMixin
	ErrFieldType         = core.ErrFieldType
	ErrMixinNotFound     = core.ErrMixinNotFound
	ErrNegativeCount     = core.ErrNegativeCount
	ErrNoFactory         = core.ErrNoFactory
	ErrNotStruct         = core.ErrNotStruct
	ErrUnknownField      = core.ErrUnknownField
)

// Attributes returns the evaluated, non-transient attributes of one instance of T.
func Attributes[T any](opts ...Option) (Attrs, error) {
	return core.Attributes[T](opts...)
}

// Create builds one T from its registered factory.
func Create[T any](opts ...Option) (T, error) {
	return core.Create[T](opts...)
}

// CreateVec builds count independent instances of T.
func CreateVec[T any](count int, opts ...Option) ([]T, error) {
	return core.CreateVec[T](count, opts...)
}

// Define starts the declaration of a factory for T.
func Define[T any]() *Definer[T] {
	return core.Define[T]()
}

// Get returns the attribute called name as a V.
func Get[V any](attrs Attrs, name string) V {
	return core.Get[V](attrs, name)
}

// GetAs returns the attribute called name converted to a V, applying the conversions
// used for struct fields. It fails with ErrFieldType when the value does not convert.
func GetAs[V any](attrs Attrs, name string) (V, error) {
	return core.GetAs[V](attrs, name)
}

// Lookup returns the attribute called name as a V, and whether it was present.
func Lookup[V any](attrs Attrs, name string) (V, bool) {
	return core.Lookup[V](attrs, name)
}

// MustCreate is Create, panicking on error.
func MustCreate[T any](opts ...Option) T {
	return core.MustCreate[T](opts...)
}

// MustCreateVec is CreateVec, panicking on error.
func MustCreateVec[T any](count int, opts ...Option) []T {
	return core.MustCreateVec[T](count, opts...)
}

// New is Create for tests: failures are reported through t.Fatalf.
func New[T any](t TestReporter, opts ...Option) T {
	t.Helper()

	return core.New[T](t, opts...)
}

// NewVec is CreateVec for tests: failures are reported through t.Fatalf.
func NewVec[T any](t TestReporter, count int, opts ...Option) []T {
	t.Helper()

	return core.NewVec[T](t, count, opts...)
}

// Set returns a Field for use in mixins and as a call-site override.
func Set(name string, value any) Field {
	return core.Set(name, value)
}

// With selects mixins by name, applied in the order given.
func With(names ...string) Option {
	return core.With(names...)
}
