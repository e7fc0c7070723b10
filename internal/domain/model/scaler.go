package model

import (
	"fmt"
)

// StandardScaler centers and scales features using per-feature mean and
// standard deviation captured at training time.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform returns a standardized copy of features. Features with a zero
// recorded deviation are only centered.
func (s *StandardScaler) Transform(features []float64) ([]float64, error) {
	if len(s.Mean) == 0 {
		return nil, ErrEmptyModel
	}
	if len(features) != len(s.Mean) || len(s.Mean) != len(s.Std) {
		return nil, fmt.Errorf("%w: got %d features, scaler fitted on %d", ErrDimensionMismatch, len(features), len(s.Mean))
	}

	out := make([]float64, len(features))
	for i, v := range features {
		d := s.Std[i]
		if d == 0 {
			out[i] = v - s.Mean[i]
			continue
		}
		out[i] = (v - s.Mean[i]) / d
	}
	return out, nil
}
