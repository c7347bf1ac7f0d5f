package factori

import (
	"github.com/toejough/factori/internal/core"
)

// Registry maps a target type to its factory definition.
type Registry = core.Registry

// AttributesIn is Attributes on reg.
func AttributesIn[T any](reg *Registry, opts ...Option) (Attrs, error) {
	return core.AttributesIn[T](reg, opts...)
}

// CreateIn is Create on reg.
func CreateIn[T any](reg *Registry, opts ...Option) (T, error) {
	return core.CreateIn[T](reg, opts...)
}

// CreateVecIn is CreateVec on reg.
func CreateVecIn[T any](reg *Registry, count int, opts ...Option) ([]T, error) {
	return core.CreateVecIn[T](reg, count, opts...)
}

// DefaultRegistry returns the process-wide registry used by Register and Create.
func DefaultRegistry() *Registry {
	return core.DefaultRegistry()
}

// Has reports whether reg holds a factory for T.
func Has[T any](reg *Registry) bool {
	return core.Has[T](reg)
}

// LookupDefinition returns the definition registered for T in reg.
func LookupDefinition[T any](reg *Registry) (*Definition[T], error) {
	return core.LookupDefinition[T](reg)
}

// NewRegistry returns an empty registry, isolated from the default one.
func NewRegistry() *Registry {
	return core.NewRegistry()
}
