package artifact

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrModelUnavailable indicates a capability whose artifact was missing
	// or corrupt at startup. The load is never retried.
	ErrModelUnavailable = errors.New("model artifact unavailable")

	// ErrUnknownPosition indicates a player scoring position outside the
	// exported set.
	ErrUnknownPosition = errors.New("unknown player position")
)
