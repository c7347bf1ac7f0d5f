package core

import (
	"errors"
	"fmt"
	"slices"
)

// Option configures a single instantiation request.
type Option interface {
	apply(req *Request)
}

// Request is an instantiation request: mixins applied in order, then call-site overrides.
type Request struct {
	Mixins    []string
	Overrides []Field
}

// Resolution is the merged field mapping for one request, split into the fields of the
// target type and the transient fields.
type Resolution struct {
	Fields     []Field
	Transients []Field
}

// Functions - Public

// NewRequest collects opts into a Request.
func NewRequest(opts ...Option) Request {
	var req Request

	for _, opt := range opts {
		if opt != nil {
			opt.apply(&req)
		}
	}

	return req
}

// With selects mixins by name. Mixins apply in the order given; later ones win.
func With(names ...string) Option {
	return mixinOption(names)
}

// Evaluate produces the attributes of one instance. Constants are copied, lazy values
// are called, then derived values run in declaration order, transient fields first.
func (r Resolution) Evaluate() Attrs {
	attrs := make(Attrs, len(r.Fields)+len(r.Transients))
	all := slices.Concat(r.Transients, r.Fields)

	for _, field := range all {
		if _, ok := field.Value.(Derived); ok {
			continue
		}

		attrs[field.Name] = evaluate(field.Value)
	}

	for _, field := range all {
		if derive, ok := field.Value.(Derived); ok {
			attrs[field.Name] = derive(attrs)
		}
	}

	return attrs
}

// Resolve merges the defaults of the definition with the requested mixins and the
// call-site overrides. Overrides beat mixins, and mixins beat defaults. The result
// depends only on the definition and req.
func (def *Definition[T]) Resolve(req Request) (Resolution, error) {
	merged := make(map[string]Field, len(def.declared))

	for _, field := range def.defaults {
		merged[field.Name] = field
	}

	for _, field := range def.transients {
		merged[field.Name] = field
	}

	var errs []error

	for _, name := range req.Mixins {
		mixin, ok := def.mixins[name]
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q for %s", ErrMixinNotFound, name, def.typ))

			continue
		}

		for _, field := range mixin {
			merged[field.Name] = field
		}
	}

	overridden := make(map[string]bool, len(req.Overrides))

	for _, field := range req.Overrides {
		if _, ok := def.declared[field.Name]; !ok {
			errs = append(errs, fmt.Errorf("%w: %q is not declared by the factory for %s",
				ErrUnknownField, field.Name, def.typ))

			continue
		}

		if overridden[field.Name] {
			errs = append(errs, fmt.Errorf("%w: %q overridden twice", ErrDuplicateField, field.Name))

			continue
		}

		overridden[field.Name] = true
		merged[field.Name] = field
	}

	if len(errs) > 0 {
		return Resolution{}, errors.Join(errs...)
	}

	res := Resolution{
		Fields:     make([]Field, 0, len(def.defaults)),
		Transients: make([]Field, 0, len(def.transients)),
	}

	for _, field := range def.defaults {
		res.Fields = append(res.Fields, merged[field.Name])
	}

	for _, field := range def.transients {
		res.Transients = append(res.Transients, merged[field.Name])
	}

	return res, nil
}

// Functions - Private

func (f Field) apply(req *Request) {
	req.Overrides = append(req.Overrides, f)
}

type mixinOption []string

func (m mixinOption) apply(req *Request) {
	req.Mixins = append(req.Mixins, m...)
}
