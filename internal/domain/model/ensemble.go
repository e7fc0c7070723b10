package model

import (
	"math"
)

// LinearMember is one linear classifier in a voting ensemble: a weight matrix
// of classes x features plus per-class intercepts, normalized with a softmax.
// Weight scales the member's contribution to the ensemble vote.
type LinearMember struct {
	Name       string      `json:"name"`
	Weights    [][]float64 `json:"weights"`
	Intercepts []float64   `json:"intercepts"`
	Weight     float64     `json:"vote_weight"`
}

// PredictProba scores a sparse feature vector and returns softmax class
// probabilities.
func (m *LinearMember) PredictProba(features map[int]float64) ([]float64, error) {
	if len(m.Weights) == 0 {
		return nil, ErrEmptyModel
	}

	logits := make([]float64, len(m.Weights))
	for c, row := range m.Weights {
		z := 0.0
		if c < len(m.Intercepts) {
			z = m.Intercepts[c]
		}
		for idx, v := range features {
			if idx < len(row) {
				z += row[idx] * v
			}
		}
		logits[c] = z
	}
	return softmax(logits), nil
}

// VotingEnsemble combines member probabilities by weighted soft voting.
type VotingEnsemble struct {
	Members   []*LinearMember `json:"members"`
	ClassList []int           `json:"classes"`
}

// PredictProba returns weighted average class probabilities across members,
// ordered by ClassList.
func (e *VotingEnsemble) PredictProba(features map[int]float64) ([]float64, error) {
	if len(e.Members) == 0 || len(e.ClassList) == 0 {
		return nil, ErrEmptyModel
	}

	acc := make([]float64, len(e.ClassList))
	totalWeight := 0.0
	for _, member := range e.Members {
		proba, err := member.PredictProba(features)
		if err != nil {
			return nil, err
		}
		if len(proba) != len(acc) {
			return nil, ErrDimensionMismatch
		}
		w := member.Weight
		if w <= 0 {
			w = 1
		}
		for i, p := range proba {
			acc[i] += w * p
		}
		totalWeight += w
	}

	for i := range acc {
		acc[i] /= totalWeight
	}
	return acc, nil
}

// Classes returns the class labels in distribution order.
func (e *VotingEnsemble) Classes() []int {
	return e.ClassList
}

func softmax(logits []float64) []float64 {
	maxLogit := math.Inf(-1)
	for _, z := range logits {
		if z > maxLogit {
			maxLogit = z
		}
	}

	out := make([]float64, len(logits))
	sum := 0.0
	for i, z := range logits {
		out[i] = math.Exp(z - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}
