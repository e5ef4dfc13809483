package interp

import "errors"

var (
	ErrCyclicInterpolation = errors.New("cyclic interpolation")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrTypeMismatch        = errors.New("type mismatch")
)
