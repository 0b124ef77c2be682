package seam

import "errors"

// Error kinds returned by the scan engine. Callers match them with errors.Is;
// the returned errors carry the failing value in their message.
var (
	// ErrInvalidInput reports a parameter that can never produce a scan:
	// a negative seam offset, a non-positive tile or step size, a tile or
	// step larger than the scanned axis, or an empty colour set.
	ErrInvalidInput = errors.New("invalid input")

	// ErrState reports an operation called out of sequence, such as a
	// re-entrant scan or a drawer step before Start.
	ErrState = errors.New("invalid state")

	// ErrIO reports a failure to encode or store a visualisation.
	ErrIO = errors.New("i/o failure")
)
