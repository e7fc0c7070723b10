package model

import (
	"errors"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrEmptyModel indicates a model with no fitted state (no samples,
	// trees, centroids or coefficients).
	ErrEmptyModel = errors.New("model has no fitted state")

	// ErrDimensionMismatch indicates a feature vector whose length does not
	// match what the model was fitted on.
	ErrDimensionMismatch = errors.New("feature dimension mismatch")
)
