package journal

import "errors"

var (
	// ErrSessionNotFound indicates a replay referenced an unknown session.
	ErrSessionNotFound = errors.New("journal: session not found")
)
