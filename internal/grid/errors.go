package grid

import "errors"

// Domain errors for grid construction and mutation.
var (
	// ErrConfiguration indicates an invalid grid geometry or endpoint placement.
	ErrConfiguration = errors.New("grid: invalid configuration")

	// ErrInvalidOperation indicates an attempt to mutate the start or finish node.
	ErrInvalidOperation = errors.New("grid: invalid operation")

	// ErrOutOfBounds indicates a coordinate outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinate out of bounds")
)
