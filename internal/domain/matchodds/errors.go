package matchodds

import "errors"

var (
	// ErrSameTeams is returned when a match is requested between a team and itself.
	ErrSameTeams = errors.New("home and away team must differ")

	// ErrUnknownTeam is returned when a team is not in the league team list.
	ErrUnknownTeam = errors.New("unknown team")
)
