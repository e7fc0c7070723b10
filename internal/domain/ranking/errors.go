package ranking

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrUnknownTeam indicates a submitted team outside the valid team list.
	ErrUnknownTeam = errors.New("unknown team")

	// ErrNoTeams indicates a prediction request with no team statistics.
	ErrNoTeams = errors.New("no team statistics submitted")
)
