package scouting

import "errors"

var (
	// ErrInvalidPosition is returned for a position outside the four scouted roles.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidLimit is returned when the requested limit is out of range.
	ErrInvalidLimit = errors.New("invalid limit")
)
