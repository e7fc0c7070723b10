package dataset

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNotFound indicates a team, season or team+season combination with
	// no rows in the dataset.
	ErrNotFound = errors.New("not found in dataset")

	// ErrInsufficientHistory indicates a team with no recorded matches to
	// derive form features from.
	ErrInsufficientHistory = errors.New("insufficient match history")
)
