package engine

import "errors"

// Errors returned by the packer. They are precondition violations reported
// before any state is modified; callers should match them with errors.Is.
var (
	// ErrInvalidConfiguration is returned when a bin dimension is not a
	// positive power of two or the padding is negative.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrOversizedInput is returned when a rectangle does not fit inside the
	// bin bounds in its unrotated form.
	ErrOversizedInput = errors.New("rectangle larger than bin")

	// ErrInvalidSize is returned for rectangles with a zero or negative side.
	ErrInvalidSize = errors.New("invalid rectangle size")

	// ErrNotInitialized is returned by PackBox before StartDynamicPacking.
	ErrNotInitialized = errors.New("dynamic packing not started")
)
