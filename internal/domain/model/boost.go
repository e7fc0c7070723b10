package model

import (
	"fmt"
)

// BoostedTrees is an additive ensemble of regression trees: the prediction is
// the base score plus the sum of every tree's leaf value.
type BoostedTrees struct {
	Base     float64     `json:"base_score"`
	Trees    []*TreeNode `json:"trees"`
	Features int         `json:"n_features"`
}

// Predict returns the additive score for features.
func (m *BoostedTrees) Predict(features []float64) (float64, error) {
	if len(m.Trees) == 0 {
		return 0, ErrEmptyModel
	}
	if m.Features > 0 && len(features) != m.Features {
		return 0, fmt.Errorf("%w: got %d features, fitted on %d", ErrDimensionMismatch, len(features), m.Features)
	}

	score := m.Base
	for _, tree := range m.Trees {
		score += tree.Score(features)
	}
	return score, nil
}
