package model

import (
	"fmt"
)

// RandomForest averages leaf class distributions across its trees.
type RandomForest struct {
	Trees     []*TreeNode `json:"trees"`
	ClassList []int       `json:"classes"`
	Features  int         `json:"n_features"`
}

// PredictProba returns the averaged, renormalized class distribution for
// features, ordered by ClassList.
func (m *RandomForest) PredictProba(features []float64) ([]float64, error) {
	if len(m.Trees) == 0 || len(m.ClassList) == 0 {
		return nil, ErrEmptyModel
	}
	if m.Features > 0 && len(features) != m.Features {
		return nil, fmt.Errorf("%w: got %d features, fitted on %d", ErrDimensionMismatch, len(features), m.Features)
	}

	acc := make([]float64, len(m.ClassList))
	voted := 0
	for _, tree := range m.Trees {
		dist := tree.Distribute(features)
		if len(dist) != len(acc) {
			continue
		}
		total := 0.0
		for _, v := range dist {
			total += v
		}
		if total <= 0 {
			continue
		}
		for i, v := range dist {
			acc[i] += v / total
		}
		voted++
	}
	if voted == 0 {
		return nil, ErrEmptyModel
	}

	for i := range acc {
		acc[i] /= float64(voted)
	}
	return acc, nil
}

// Classes returns the class labels in distribution order.
func (m *RandomForest) Classes() []int {
	return m.ClassList
}
