package hierarchical

import (
	"testing"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

func TestCalculatePositionsEmpty(t *testing.T) {
	engine := New(layout.DefaultOptions())

	positioned := engine.CalculatePositions(nil)
	if positioned == nil {
		t.Fatal("expected non-nil slice for empty input")
	}
	if len(positioned) != 0 {
		t.Errorf("positioned = %d nodes, want 0", len(positioned))
	}
}

func TestCalculatePositionsSingleNode(t *testing.T) {
	g := graph.BuildGraph(map[string]any{"name": "John", "age": float64(30)})
	if len(g.Nodes) != 1 {
		t.Fatalf("fixture: %d nodes, want 1", len(g.Nodes))
	}

	opts := layout.DefaultOptions()
	positioned := New(opts).CalculatePositions(g.Nodes)

	root := positioned[0]
	if root.X != opts.PaddingLeft || root.Y != opts.PaddingTop {
		t.Errorf("root at (%v, %v), want (%v, %v)", root.X, root.Y, opts.PaddingLeft, opts.PaddingTop)
	}
	if root.Width != opts.NodeWidth {
		t.Errorf("width = %v, want %v", root.Width, opts.NodeWidth)
	}
	// Header plus two property rows.
	if want := opts.HeaderHeight + 2*opts.RowHeight; root.Height != want {
		t.Errorf("height = %v, want %v", root.Height, want)
	}
}

func TestCalculatePositionsChain(t *testing.T) {
	g := graph.BuildGraph(map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "x"},
		},
	})

	opts := layout.DefaultOptions()
	byID := layout.ByID(New(opts).CalculatePositions(g.Nodes))

	for id, depth := range map[string]int{"root": 0, "a": 1, "a.b": 2} {
		n, ok := byID[id]
		if !ok {
			t.Fatalf("node %s missing from layout", id)
		}
		if want := opts.PaddingLeft + float64(depth)*opts.LevelSpacing; n.X != want {
			t.Errorf("%s: X = %v, want %v", id, n.X, want)
		}
	}

	// A lone child centers on its parent's vertical midpoint.
	root, a := byID["root"], byID["a"]
	if a.CenterY() != root.CenterY() {
		t.Errorf("a centerY = %v, want %v", a.CenterY(), root.CenterY())
	}
}

func TestCalculatePositionsLevelSpacing(t *testing.T) {
	g := graph.BuildGraph(map[string]any{
		"a": map[string]any{
			"b": map[string]any{"c": "x"},
		},
	})

	opts := layout.DefaultOptions()
	opts.LevelSpacing += 120

	byID := layout.ByID(New(opts).CalculatePositions(g.Nodes))
	for id, depth := range map[string]int{"root": 0, "a": 1, "a.b": 2} {
		if want := opts.PaddingLeft + float64(depth)*opts.LevelSpacing; byID[id].X != want {
			t.Errorf("%s: X = %v, want %v", id, byID[id].X, want)
		}
	}
}

func TestCalculatePositionsSiblingColumns(t *testing.T) {
	g := graph.BuildGraph(map[string]any{
		"alpha": map[string]any{"v": float64(1)},
		"beta":  map[string]any{"v": float64(2)},
		"gamma": map[string]any{"v": float64(3)},
	})

	positioned := New(layout.DefaultOptions()).CalculatePositions(g.Nodes)

	if report := Validate(positioned); !report.OK() {
		t.Errorf("layout has diagnostics: %s", report)
	}

	// Siblings within one column keep at least the node spacing between them.
	byID := layout.ByID(positioned)
	alpha, beta := byID["alpha"], byID["beta"]
	if alpha.X == beta.X {
		gap := beta.Y - (alpha.Y + alpha.Height)
		if gap < layout.DefaultNodeSpacing {
			t.Errorf("vertical gap = %v, want >= %v", gap, layout.DefaultNodeSpacing)
		}
	}
}

func TestCalculatePositionsNoOverlap(t *testing.T) {
	items := make([]any, 9)
	for i := range items {
		items[i] = map[string]any{"idx": float64(i)}
	}
	g := graph.BuildGraph(map[string]any{"items": items})

	positioned := New(layout.DefaultOptions()).CalculatePositions(g.Nodes)

	report := Validate(positioned)
	if len(report.Overlaps) != 0 {
		t.Errorf("found %d overlapping pairs: %v", len(report.Overlaps), report.Overlaps)
	}
}

func TestCalculatePositionsDeterministic(t *testing.T) {
	g := graph.BuildGraph(map[string]any{
		"users": []any{
			map[string]any{"name": "a"},
			map[string]any{"name": "b"},
			map[string]any{"name": "c"},
		},
		"config": map[string]any{"debug": true},
	})

	engine := New(layout.DefaultOptions())
	first := engine.CalculatePositions(g.Nodes)

	for run := 0; run < 5; run++ {
		again := engine.CalculatePositions(g.Nodes)
		if len(again) != len(first) {
			t.Fatalf("run %d: %d nodes, want %d", run, len(again), len(first))
		}
		firstByID := layout.ByID(first)
		for _, n := range again {
			prev := firstByID[n.ID]
			if n.X != prev.X || n.Y != prev.Y {
				t.Errorf("run %d: %s at (%v, %v), want (%v, %v)", run, n.ID, n.X, n.Y, prev.X, prev.Y)
			}
		}
	}
}

func TestOptimalSpacing(t *testing.T) {
	nodeSp, levelSp := OptimalSpacing(nil)
	if nodeSp != DefaultNodeSpacingFloor || levelSp != DefaultLevelSpacingFloor {
		t.Errorf("empty: (%v, %v), want floors (%v, %v)",
			nodeSp, levelSp, DefaultNodeSpacingFloor, DefaultLevelSpacingFloor)
	}

	items := make([]any, 20)
	for i := range items {
		items[i] = map[string]any{"a": float64(i), "b": "x", "c": true}
	}
	g := graph.BuildGraph(map[string]any{"items": items})

	nodeSp, levelSp = OptimalSpacing(g.Nodes)
	if nodeSp < DefaultNodeSpacingFloor {
		t.Errorf("nodeSpacing %v below floor", nodeSp)
	}
	if levelSp < DefaultLevelSpacingFloor {
		t.Errorf("levelSpacing %v below floor", levelSp)
	}
	if nodeSp == DefaultNodeSpacingFloor {
		t.Error("crowded level should raise node spacing above the floor")
	}
}

func TestValidate(t *testing.T) {
	nodes := []*layout.PositionedNode{
		{Node: graph.Node{ID: "a"}, X: 0, Y: 0, Width: 100, Height: 50},
		{Node: graph.Node{ID: "b"}, X: 50, Y: 25, Width: 100, Height: 50},
		{Node: graph.Node{ID: "c"}, X: -10, Y: 300, Width: 100, Height: 50},
	}

	report := Validate(nodes)
	if report.OK() {
		t.Fatal("expected diagnostics")
	}
	if len(report.Overlaps) != 1 || report.Overlaps[0] != (OverlapPair{A: "a", B: "b"}) {
		t.Errorf("overlaps = %v, want [{a b}]", report.Overlaps)
	}
	if len(report.NegativeCoords) != 1 || report.NegativeCoords[0] != "c" {
		t.Errorf("negative coords = %v, want [c]", report.NegativeCoords)
	}
}
