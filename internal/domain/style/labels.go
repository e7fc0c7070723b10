package style

import "fmt"

// ClusterInfo names one tactical style cluster.
type ClusterInfo struct {
	ID          int    `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
}

var clusterLabels = map[int]string{
	0: "Attacking",
	1: "Defensive",
	2: "Possession",
	3: "High-Press",
	4: "Pragmatic",
}

var clusterDescriptions = map[int]string{
	0: "High-scoring teams with aggressive offensive tactics",
	1: "Solid defensive units prioritizing clean sheets",
	2: "Ball-dominant teams controlling the game through passing",
	3: "Intense pressing and high-tempo playing style",
	4: "Balanced approach adapting to match situations",
}

// clusterInfo resolves a cluster id to its label and description.
func clusterInfo(id int) ClusterInfo {
	label, ok := clusterLabels[id]
	if !ok {
		label = fmt.Sprintf("Cluster %d", id)
	}
	return ClusterInfo{
		ID:          id,
		Label:       label,
		Description: clusterDescriptions[id],
	}
}
