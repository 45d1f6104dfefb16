package hierarchical

import (
	"fmt"

	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// OverlapPair names two nodes whose boxes intersect.
type OverlapPair struct {
	A string
	B string
}

// Report collects layout diagnostics: overlapping node pairs and nodes
// placed at negative coordinates. It is advisory only.
type Report struct {
	Overlaps       []OverlapPair
	NegativeCoords []string
}

// OK reports whether the layout is free of diagnostics.
func (r Report) OK() bool {
	return len(r.Overlaps) == 0 && len(r.NegativeCoords) == 0
}

// String summarizes the report for log output.
func (r Report) String() string {
	if r.OK() {
		return "layout ok"
	}
	return fmt.Sprintf("%d overlapping pairs, %d nodes at negative coordinates",
		len(r.Overlaps), len(r.NegativeCoords))
}

// Validate runs a pairwise AABB scan over positioned nodes and flags
// overlaps and negative coordinates. O(n²), meant for tests and debug
// logging rather than hot paths.
func Validate(nodes []*layout.PositionedNode) Report {
	var r Report
	for i, a := range nodes {
		if a.X < 0 || a.Y < 0 {
			r.NegativeCoords = append(r.NegativeCoords, a.ID)
		}
		for _, b := range nodes[i+1:] {
			if layout.Overlaps(a, b, 0, 0) {
				r.Overlaps = append(r.Overlaps, OverlapPair{A: a.ID, B: b.ID})
			}
		}
	}
	return r
}
