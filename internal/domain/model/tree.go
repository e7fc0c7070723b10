package model

// TreeNode is one node of a serialized decision tree. Internal nodes route on
// Feature/Threshold; leaves carry either a class Distribution (classification
// trees) or a scalar Value (regression and boosted trees).
type TreeNode struct {
	IsLeaf       bool      `json:"is_leaf"`
	Feature      int       `json:"feature"`
	Threshold    float64   `json:"threshold"`
	Left         *TreeNode `json:"left,omitempty"`
	Right        *TreeNode `json:"right,omitempty"`
	Distribution []float64 `json:"distribution,omitempty"`
	Value        float64   `json:"value"`
}

// walk descends to the leaf for features. Samples route left on
// feature <= threshold, matching the exporter's split convention.
func (n *TreeNode) walk(features []float64) *TreeNode {
	node := n
	for node != nil && !node.IsLeaf {
		if node.Feature < 0 || node.Feature >= len(features) {
			return nil
		}
		if features[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node
}

// Distribute returns the leaf class distribution for features, or nil when
// the tree is malformed for this input.
func (n *TreeNode) Distribute(features []float64) []float64 {
	leaf := n.walk(features)
	if leaf == nil {
		return nil
	}
	return leaf.Distribution
}

// Score returns the leaf value for features.
func (n *TreeNode) Score(features []float64) float64 {
	leaf := n.walk(features)
	if leaf == nil {
		return 0
	}
	return leaf.Value
}
