package hierarchical

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// columnOffset is the fixed horizontal increment between sibling columns
// when a parent has more than one container child.
const columnOffset = 200.0

// maxColumns caps how wide a sibling group may fan out.
const maxColumns = 4

// Engine computes deterministic tree positions for a set of graph nodes.
// It is a pure function of its input plus per-call scratch maps - the same
// nodes and options always produce the same coordinates.
type Engine struct {
	opts layout.Options
}

// New creates a hierarchical layout engine with the given geometry options.
func New(opts layout.Options) *Engine {
	return &Engine{opts: opts}
}

// CalculatePositions measures the nodes and assigns x/y coordinates level by
// level: roots stack at the left padding, children center on their parent's
// vertical midpoint, and each placement is nudged rightward until it clears
// every already-placed box on the same level.
//
// An empty input yields an empty (non-nil) slice. A single node lands at
// (PaddingLeft, PaddingTop).
func (e *Engine) CalculatePositions(nodes []graph.Node) []*layout.PositionedNode {
	measured := layout.Measure(nodes, e.opts)
	if len(measured) == 0 {
		return []*layout.PositionedNode{}
	}

	byID := layout.ByID(measured)
	levels := groupByDepth(measured)

	// placed tracks finished boxes per depth for the overlap scan.
	placed := make(map[int][]*layout.PositionedNode)

	for _, depth := range sortedDepths(levels) {
		level := levels[depth]
		sortLevel(level)

		if depth == 0 {
			e.placeRoots(level)
			placed[0] = level
			continue
		}

		for _, group := range groupByParent(level) {
			parent := byID[group[0].Parent]
			if len(group) == 1 {
				e.placeSingle(group[0], parent, depth, placed)
			} else {
				e.placeColumns(group, parent, depth, placed)
			}
		}
		placed[depth] = level
	}

	return measured
}

// placeRoots stacks depth-0 nodes vertically at the left padding.
func (e *Engine) placeRoots(level []*layout.PositionedNode) {
	y := e.opts.PaddingTop
	for _, n := range level {
		n.X = e.opts.PaddingLeft
		n.Y = y
		y += n.Height + e.opts.NodeSpacing
	}
}

// placeSingle centers a lone child on its parent's vertical midpoint.
func (e *Engine) placeSingle(n, parent *layout.PositionedNode, depth int, placed map[int][]*layout.PositionedNode) {
	n.X = e.levelBaseX(depth)
	n.Y = e.opts.PaddingTop
	if parent != nil {
		n.Y = parent.CenterY() - n.Height/2
	}
	e.resolveOverlap(n, placed[depth])
	placed[depth] = append(placed[depth], n)
}

// placeColumns arranges a multi-child sibling group into balanced columns.
// Column count grows with the square root of the group size, capped at four;
// each column stacks its nodes and centers the stack on the parent midpoint.
func (e *Engine) placeColumns(group []*layout.PositionedNode, parent *layout.PositionedNode, depth int, placed map[int][]*layout.PositionedNode) {
	cols := int(math.Ceil(math.Sqrt(float64(len(group)))))
	if cols < 2 {
		cols = 2
	}
	if cols > maxColumns {
		cols = maxColumns
	}

	midY := e.opts.PaddingTop
	if parent != nil {
		midY = parent.CenterY()
	}

	baseX := e.levelBaseX(depth)
	for col, column := range splitColumns(group, cols) {
		stackH := -e.opts.NodeSpacing
		for _, n := range column {
			stackH += n.Height + e.opts.NodeSpacing
		}

		y := midY - stackH/2
		for _, n := range column {
			n.X = baseX + float64(col)*columnOffset
			n.Y = y
			y += n.Height + e.opts.NodeSpacing

			e.resolveOverlap(n, placed[depth])
			placed[depth] = append(placed[depth], n)
		}
	}
}

// resolveOverlap shifts n rightward until it clears every already-placed box
// on its level. The scan restarts after each shift, so a move into a new
// collision is caught on the next pass. Worst case O(n²) per placement,
// acceptable at the expected scale of a few hundred nodes.
func (e *Engine) resolveOverlap(n *layout.PositionedNode, placedLevel []*layout.PositionedNode) {
	for moved := true; moved; {
		moved = false
		for _, other := range placedLevel {
			if layout.Overlaps(n, other, layout.HorizontalBuffer, layout.VerticalBuffer) {
				n.X = other.X + other.Width + layout.HorizontalBuffer
				moved = true
			}
		}
	}
}

// levelBaseX is a pure function of depth; column offsets only perturb
// placements within that band.
func (e *Engine) levelBaseX(depth int) float64 {
	return e.opts.PaddingLeft + float64(depth)*e.opts.LevelSpacing
}

// =============================================================================
// Grouping Helpers
// =============================================================================

func groupByDepth(nodes []*layout.PositionedNode) map[int][]*layout.PositionedNode {
	levels := make(map[int][]*layout.PositionedNode)
	for _, n := range nodes {
		levels[n.Depth] = append(levels[n.Depth], n)
	}
	return levels
}

func sortedDepths(levels map[int][]*layout.PositionedNode) []int {
	depths := make([]int, 0, len(levels))
	for d := range levels {
		depths = append(depths, d)
	}
	slices.Sort(depths)
	return depths
}

// sortLevel orders nodes by path length, then lexicographically by path,
// so placement within a level is reproducible.
func sortLevel(level []*layout.PositionedNode) {
	slices.SortFunc(level, func(a, b *layout.PositionedNode) int {
		if la, lb := len(a.Path), len(b.Path); la != lb {
			return la - lb
		}
		return strings.Compare(a.PathString(), b.PathString())
	})
}

// groupByParent splits a sorted level into sibling runs, preserving both the
// in-level ordering and a deterministic group order.
func groupByParent(level []*layout.PositionedNode) [][]*layout.PositionedNode {
	byParent := make(map[string][]*layout.PositionedNode)
	var order []string
	for _, n := range level {
		if _, seen := byParent[n.Parent]; !seen {
			order = append(order, n.Parent)
		}
		byParent[n.Parent] = append(byParent[n.Parent], n)
	}

	groups := make([][]*layout.PositionedNode, len(order))
	for i, parent := range order {
		groups[i] = byParent[parent]
	}
	return groups
}

// splitColumns distributes nodes into cols balanced columns, keeping the
// input order. Leading columns take the remainder.
func splitColumns(group []*layout.PositionedNode, cols int) [][]*layout.PositionedNode {
	base := len(group) / cols
	rem := len(group) % cols

	out := make([][]*layout.PositionedNode, 0, cols)
	idx := 0
	for c := 0; c < cols && idx < len(group); c++ {
		size := base
		if c < rem {
			size++
		}
		if size == 0 {
			continue
		}
		out = append(out, group[idx:idx+size])
		idx += size
	}
	return out
}
