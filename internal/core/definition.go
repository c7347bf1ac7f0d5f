package core

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// Definer declares a factory for T. Its methods chain; declaration errors are collected
// and reported together when the definition is registered.
type Definer[T any] struct {
	def  *Definition[T]
	errs []error
}

// Definition is a registered factory for T: ordered default and transient blocks, named
// mixins and an optional builder. A registered Definition is never mutated.
type Definition[T any] struct {
	typ        reflect.Type
	defaults   []Field
	transients []Field
	mixins     map[string][]Field
	mixinNames []string
	builder    func(attrs Attrs) (T, error)

	// declared maps every default and transient field name to whether it is transient.
	declared map[string]bool
}

// Functions - Public

// Define starts the declaration of a factory for T.
func Define[T any]() *Definer[T] {
	return &Definer[T]{
		def: &Definition[T]{
			typ:      reflect.TypeFor[T](),
			mixins:   make(map[string][]Field),
			declared: make(map[string]bool),
		},
	}
}

// Builder sets a custom constructor. It receives every attribute, transient ones
// included, and replaces the field-by-field struct assignment. With a builder, T need
// not be a struct and default names need not match its fields. Attribute values keep
// the type they were given, so a builder reading numbers that callers may override with
// another numeric type should use GetAs rather than Get, which panics on a type mismatch.
func (d *Definer[T]) Builder(build func(attrs Attrs) (T, error)) *Definer[T] {
	d.def.builder = build

	return d
}

// Default declares a field of T with its default value.
func (d *Definer[T]) Default(name string, value any) *Definer[T] {
	d.declare(name, value, false)

	return d
}

// Definition validates the declaration and returns a frozen copy of it.
func (d *Definer[T]) Definition() (*Definition[T], error) {
	errs := slices.Clone(d.errs)
	errs = append(errs, d.def.validate()...)

	if len(errs) > 0 {
		return nil, fmt.Errorf("factory for %s: %w", d.def.typ, errors.Join(errs...))
	}

	return d.def.clone(), nil
}

// Mixin declares a named bundle of overrides. Every field it sets must be declared as a
// default or transient field of the same definition.
func (d *Definer[T]) Mixin(name string, fields ...Field) *Definer[T] {
	if _, ok := d.def.mixins[name]; ok {
		d.errs = append(d.errs, fmt.Errorf("%w: %q", ErrDuplicateMixin, name))

		return d
	}

	seen := make(map[string]bool, len(fields))

	for _, field := range fields {
		if seen[field.Name] {
			d.errs = append(d.errs, fmt.Errorf("%w: %q in mixin %q", ErrDuplicateField, field.Name, name))

			continue
		}

		seen[field.Name] = true
	}

	d.def.mixins[name] = slices.Clone(fields)
	d.def.mixinNames = append(d.def.mixinNames, name)

	return d
}

// MustRegister registers the definition with the default registry and panics on error.
// It suits package init functions and TestMain.
func (d *Definer[T]) MustRegister() {
	err := d.Register()
	if err != nil {
		panic(err)
	}
}

// Register validates the definition and adds it to the default registry.
func (d *Definer[T]) Register() error {
	return d.RegisterIn(DefaultRegistry())
}

// RegisterIn validates the definition and adds it to reg.
func (d *Definer[T]) RegisterIn(reg *Registry) error {
	def, err := d.Definition()
	if err != nil {
		return err
	}

	return reg.add(def.typ, def)
}

// Transient declares a field that takes part in resolution but is not a field of T.
// Transient values are visible to derived values and builders.
func (d *Definer[T]) Transient(name string, value any) *Definer[T] {
	d.declare(name, value, true)

	return d
}

// Fields returns the default fields in declaration order.
func (def *Definition[T]) Fields() []Field {
	return slices.Clone(def.defaults)
}

// Mixins returns the mixin names in declaration order.
func (def *Definition[T]) Mixins() []string {
	return slices.Clone(def.mixinNames)
}

// Transients returns the transient fields in declaration order.
func (def *Definition[T]) Transients() []Field {
	return slices.Clone(def.transients)
}

// Type returns the type the definition builds.
func (def *Definition[T]) Type() reflect.Type {
	return def.typ
}

// Functions - Private

func (d *Definer[T]) declare(name string, value any, transient bool) {
	if prior, ok := d.def.declared[name]; ok {
		d.errs = append(d.errs, fmt.Errorf(
			"%w: %q already declared as %s field", ErrDuplicateField, name, blockName(prior),
		))

		return
	}

	d.def.declared[name] = transient

	field := Field{Name: name, Value: value}
	if transient {
		d.def.transients = append(d.def.transients, field)
	} else {
		d.def.defaults = append(d.def.defaults, field)
	}
}

func (def *Definition[T]) clone() *Definition[T] {
	mixins := make(map[string][]Field, len(def.mixins))
	for name, fields := range def.mixins {
		mixins[name] = cloneFields(fields)
	}

	return &Definition[T]{
		typ:        def.typ,
		defaults:   cloneFields(def.defaults),
		transients: cloneFields(def.transients),
		mixins:     mixins,
		mixinNames: slices.Clone(def.mixinNames),
		builder:    def.builder,
		declared:   maps.Clone(def.declared),
	}
}

// validate checks the rules that need the whole declaration: mixin fields must be
// declared, and without a builder the defaults must fit the fields of T.
func (def *Definition[T]) validate() []error {
	var errs []error

	for _, name := range def.mixinNames {
		for _, field := range def.mixins[name] {
			if _, ok := def.declared[field.Name]; !ok {
				errs = append(errs, fmt.Errorf("%w: %q in mixin %q", ErrUnknownField, field.Name, name))
			}
		}
	}

	if def.builder != nil {
		return errs
	}

	if def.typ.Kind() != reflect.Struct {
		return append(errs, fmt.Errorf("%w: %s is a %s", ErrNotStruct, def.typ, def.typ.Kind()))
	}

	for _, field := range def.defaults {
		errs = append(errs, def.checkValue(field, "default block")...)
	}

	for _, name := range def.mixinNames {
		for _, field := range def.mixins[name] {
			if transient, ok := def.declared[field.Name]; !ok || transient {
				continue
			}

			errs = append(errs, def.checkValue(field, fmt.Sprintf("mixin %q", name))...)
		}
	}

	return errs
}

// checkValue reports a field of the default block or a mixin that T cannot hold.
func (def *Definition[T]) checkValue(field Field, where string) []error {
	_, fieldType, err := fieldIndex(def.typ, field.Name)
	if err != nil {
		return []error{fmt.Errorf("%s: %w", where, err)}
	}

	if isDeferred(field.Value) {
		return nil
	}

	_, err = convertValue(field.Value, fieldType)
	if err != nil {
		return []error{fmt.Errorf("%s: field %q: %w", where, field.Name, err)}
	}

	return nil
}

// cloneFields copies fields and their constant values, so a registered definition is
// unaffected by later changes to the values passed to the definer.
func cloneFields(fields []Field) []Field {
	if fields == nil {
		return nil
	}

	out := make([]Field, len(fields))
	for i, field := range fields {
		out[i] = Field{Name: field.Name, Value: cloneValue(field.Value)}
	}

	return out
}

func blockName(transient bool) string {
	if transient {
		return "a transient"
	}

	return "a default"
}
