package mesh

import "errors"

// Error classes. Every error returned by this package wraps exactly one of
// these, so callers can classify failures with errors.Is.
var (
	// ErrInvalidInput reports construction input that cannot produce a grid,
	// such as a split plane outside the bounding box.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidSelection reports a block, edge, face or vertex selection
	// that an operation cannot work with.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrAmbiguousMove reports a move given both or neither of a location
	// and a delta.
	ErrAmbiguousMove = errors.New("ambiguous move arguments")

	// ErrMalformedCoordinate reports a point that is not exactly three
	// finite numbers.
	ErrMalformedCoordinate = errors.New("malformed coordinate")
)
