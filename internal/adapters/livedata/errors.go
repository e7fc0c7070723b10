package livedata

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrTeamNotMapped indicates a team with no upstream identifier.
	ErrTeamNotMapped = errors.New("team not mapped to a live-data id")

	// ErrMatchNotFound indicates no fixture between the two teams in the
	// upstream's recent window.
	ErrMatchNotFound = errors.New("match not found")

	// ErrUpstream indicates a transport or status failure from the
	// live-data source.
	ErrUpstream = errors.New("live-data source unavailable")
)
