package jsonext

import "errors"

// Common errors used throughout the JSONext package
var (
	// ErrUnsupportedType is returned when Stringify meets a value with no JSON form (channels, functions, complex numbers).
	ErrUnsupportedType = errors.New("unsupported value type")
	// ErrEmptyDocument is returned when nothing but comments and whitespace is parsed.
	ErrEmptyDocument = errors.New("empty document")
	// ErrCyclicValue is returned when Stringify meets a value that contains itself.
	ErrCyclicValue = errors.New("cyclic value")
	// ErrUnsupportedMapKey is returned when a map key is not a string kind.
	ErrUnsupportedMapKey = errors.New("unsupported map key type")
	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
)
