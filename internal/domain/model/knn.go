package model

import (
	"fmt"
	"math"
	"sort"
)

// KNNRegressor predicts by averaging the targets of the K nearest training
// samples under euclidean distance.
type KNNRegressor struct {
	K       int         `json:"k"`
	Samples [][]float64 `json:"samples"`
	Targets []float64   `json:"targets"`
}

// Predict returns the mean target of the K nearest neighbors of features.
func (m *KNNRegressor) Predict(features []float64) (float64, error) {
	if len(m.Samples) == 0 || len(m.Samples) != len(m.Targets) {
		return 0, ErrEmptyModel
	}
	if len(features) != len(m.Samples[0]) {
		return 0, fmt.Errorf("%w: got %d features, fitted on %d", ErrDimensionMismatch, len(features), len(m.Samples[0]))
	}

	neighbors := m.findNeighbors(features)

	sum := 0.0
	for _, idx := range neighbors {
		sum += m.Targets[idx]
	}
	return sum / float64(len(neighbors)), nil
}

func (m *KNNRegressor) findNeighbors(features []float64) []int {
	type neighbor struct {
		index    int
		distance float64
	}

	neighbors := make([]neighbor, len(m.Samples))
	for i, sample := range m.Samples {
		neighbors[i] = neighbor{index: i, distance: euclidean(features, sample)}
	}

	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})

	k := m.K
	if k <= 0 || k > len(neighbors) {
		k = len(neighbors)
	}

	out := make([]int, k)
	for i := 0; i < k; i++ {
		out[i] = neighbors[i].index
	}
	return out
}

func euclidean(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum)
}
