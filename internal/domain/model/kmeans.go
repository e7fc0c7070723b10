package model

import (
	"fmt"
)

// KMeans assigns vectors to the nearest of a fixed set of centroids.
type KMeans struct {
	Centroids [][]float64 `json:"centroids"`
}

// Assign returns the index of the centroid closest to features.
func (m *KMeans) Assign(features []float64) (int, error) {
	dists, err := m.Distances(features)
	if err != nil {
		return 0, err
	}

	best := 0
	for i := 1; i < len(dists); i++ {
		if dists[i] < dists[best] {
			best = i
		}
	}
	return best, nil
}

// Distances returns the euclidean distance from features to every centroid.
func (m *KMeans) Distances(features []float64) ([]float64, error) {
	if len(m.Centroids) == 0 {
		return nil, ErrEmptyModel
	}
	if len(features) != len(m.Centroids[0]) {
		return nil, fmt.Errorf("%w: got %d features, centroids have %d", ErrDimensionMismatch, len(features), len(m.Centroids[0]))
	}

	dists := make([]float64, len(m.Centroids))
	for i, c := range m.Centroids {
		dists[i] = euclidean(features, c)
	}
	return dists, nil
}

// NumClusters returns the number of centroids.
func (m *KMeans) NumClusters() int {
	return len(m.Centroids)
}
