package core

import "errors"

// Definition errors.
var (
	ErrAlreadyRegistered = errors.New("factory already registered")
	ErrDuplicateField    = errors.New("duplicate field")
	ErrDuplicateMixin    = errors.New("duplicate mixin")
	ErrFieldType         = errors.New("value does not fit field")
	ErrNotStruct         = errors.New("factory without a builder needs a struct type")
	ErrUnknownField      = errors.New("unknown field")
)

// Instantiation errors.
var (
	ErrBuilder       = errors.New("builder failed")
	ErrMixinNotFound = errors.New("mixin not found")
	ErrNegativeCount = errors.New("negative count")
	ErrNoFactory     = errors.New("no factory registered")
)
