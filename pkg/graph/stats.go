package graph

// Stats summarizes the shape of a built graph.
type Stats struct {
	NodeCount int `json:"node_count"`
	LinkCount int `json:"link_count"`

	// TypeCounts maps node type (object, array, ...) to occurrence count.
	TypeCounts map[string]int `json:"type_counts"`

	// MaxDepth is the deepest node level (0 for a lone root, -1 when empty).
	MaxDepth int `json:"max_depth"`

	// AvgChildren is the mean number of container children per node.
	AvgChildren float64 `json:"avg_children"`
}

// ComputeStats counts nodes by type and derives depth and branching metrics.
// An empty graph reports MaxDepth -1 and zero averages.
func ComputeStats(g Graph) Stats {
	s := Stats{
		NodeCount:  len(g.Nodes),
		LinkCount:  len(g.Links),
		TypeCounts: make(map[string]int),
		MaxDepth:   -1,
	}

	totalChildren := 0
	for _, n := range g.Nodes {
		s.TypeCounts[n.Type]++
		if n.Depth > s.MaxDepth {
			s.MaxDepth = n.Depth
		}
		totalChildren += len(n.Children)
	}

	if s.NodeCount > 0 {
		s.AvgChildren = float64(totalChildren) / float64(s.NodeCount)
	}
	return s
}
