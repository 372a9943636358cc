package capacity

import "errors"

var (
	// ErrInvalidTable indicates a capacity table that breaks its invariants
	// (empty, duplicate speeds, negative or non-finite values).
	ErrInvalidTable = errors.New("capacity: invalid table")
)
