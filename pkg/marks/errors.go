package marks

import "errors"

// Argument and precondition errors surfaced by the command layer as
// single-line status messages.
var (
	ErrMissingIndex  = errors.New("index not provided")
	ErrInvalidIndex  = errors.New("index must be an integer")
	ErrNoBackingPath = errors.New("current document has no path")
)
