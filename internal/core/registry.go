package core

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// Registry maps a target type to its factory definition. Each type can be registered
// once; registered definitions are never replaced or mutated.
type Registry struct {
	mu   sync.RWMutex
	defs map[reflect.Type]any
}

// Functions - Public

// DefaultRegistry returns the process-wide registry used by Register and Create.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Has reports whether reg holds a factory for T.
func Has[T any](reg *Registry) bool {
	_, ok := reg.get(reflect.TypeFor[T]())

	return ok
}

// LookupDefinition returns the definition registered for T in reg.
func LookupDefinition[T any](reg *Registry) (*Definition[T], error) {
	typ := reflect.TypeFor[T]()

	entry, ok := reg.get(typ)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoFactory, typ)
	}

	def, ok := entry.(*Definition[T])
	if !ok {
		// entries are keyed by the type they build
		panic(fmt.Sprintf("registry entry for %s holds %T", typ, entry))
	}

	return def, nil
}

// NewRegistry returns an empty registry, for tests that need isolation from the
// default one.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[reflect.Type]any)}
}

// Types returns the registered types sorted by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]reflect.Type, 0, len(r.defs))
	for typ := range r.defs {
		types = append(types, typ)
	}

	sort.Slice(types, func(i, j int) bool { return types[i].String() < types[j].String() })

	return types
}

// Functions - Private

func (r *Registry) add(typ reflect.Type, def any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.defs[typ]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, typ)
	}

	r.defs[typ] = def

	return nil
}

func (r *Registry) get(typ reflect.Type) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.defs[typ]

	return def, ok
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level registry is intentional for factory lookup by type
	defaultRegistry = NewRegistry()
)
