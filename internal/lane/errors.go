package lane

import "errors"

// Sentinel errors for store construction.
var (
	// ErrBadCapacity indicates a non-positive entity capacity.
	ErrBadCapacity = errors.New("lane: capacity must be positive")

	// ErrBadBlockSize indicates a negative block size (zero selects the
	// default).
	ErrBadBlockSize = errors.New("lane: block size must be positive")
)
