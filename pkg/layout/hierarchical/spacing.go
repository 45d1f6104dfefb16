package hierarchical

import "github.com/matzehuels/jsoncanvas/pkg/graph"

// OptimalSpacing derives node and level spacing from the shape of the graph.
// Crowded levels and tall cards get more room; the defaults (node 80,
// level 200) act as hard floors so sparse graphs keep the canonical look.
func OptimalSpacing(nodes []graph.Node) (nodeSpacing, levelSpacing float64) {
	nodeSpacing = DefaultNodeSpacingFloor
	levelSpacing = DefaultLevelSpacingFloor
	if len(nodes) == 0 {
		return nodeSpacing, levelSpacing
	}

	perDepth := make(map[int]int)
	maxProps := 0
	for _, n := range nodes {
		perDepth[n.Depth]++
		if len(n.Properties) > maxProps {
			maxProps = len(n.Properties)
		}
	}

	widest := 0
	for _, count := range perDepth {
		if count > widest {
			widest = count
		}
	}

	// Each extra node on the most crowded level adds a little vertical air;
	// deep property lists stretch cards, so levels drift apart with them.
	if s := nodeSpacing + float64(widest-1)*4; s > nodeSpacing {
		nodeSpacing = s
	}
	if s := levelSpacing + float64(maxProps)*8; s > levelSpacing {
		levelSpacing = s
	}
	return nodeSpacing, levelSpacing
}

// Spacing floors. OptimalSpacing never returns values below these.
const (
	DefaultNodeSpacingFloor  = 80.0
	DefaultLevelSpacingFloor = 200.0
)
