// Package model implements the inference side of the trained estimators
// served by the API. Models are hydrated from exported artifact bundles and
// are read-only at runtime; there is no in-process training.
package model

// Regressor predicts a single continuous value for a feature vector.
type Regressor interface {
	Predict(features []float64) (float64, error)
}

// Classifier produces a class probability distribution for a feature vector.
// The returned slice is ordered by the model's class list.
type Classifier interface {
	PredictProba(features []float64) ([]float64, error)
	Classes() []int
}

// Clusterer assigns a feature vector to one of a fixed set of clusters.
type Clusterer interface {
	Assign(features []float64) (int, error)
	NumClusters() int
}

// Argmax returns the index of the largest value in vals, or -1 when empty.
// Ties resolve to the lowest index.
func Argmax(vals []float64) int {
	if len(vals) == 0 {
		return -1
	}
	best := 0
	for i := 1; i < len(vals); i++ {
		if vals[i] > vals[best] {
			best = i
		}
	}
	return best
}
