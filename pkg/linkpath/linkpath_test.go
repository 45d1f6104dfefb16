package linkpath

import (
	"testing"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// fixture: a root card with one inline property and one child-owning
// property, plus the child it points at.
func fixtureNodes() []*layout.PositionedNode {
	return []*layout.PositionedNode{
		{
			Node: graph.Node{
				ID: "root",
				Properties: []graph.Property{
					{Key: "age", Type: graph.TypeNumber},
					{Key: "user", Type: graph.TypeObject, HasChildNode: true, ChildNodeID: "user"},
				},
			},
			X: 50, Y: 50, Width: 200, Height: 88,
		},
		{
			Node: graph.Node{ID: "user", Key: "user", Path: []string{"user"}, Parent: "root"},
			X:    450, Y: 80, Width: 200, Height: 64,
		},
	}
}

func TestPropertyConnectionPoint(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0)
	root := fixtureNodes()[0]

	tests := []struct {
		name string
		key  string
		want *Point
	}{
		{
			name: "ChildOwningProperty",
			key:  "user",
			// Right edge, second row: y = 50 + 40 + 1*24 + 12.
			want: &Point{X: 250, Y: 126},
		},
		{
			name: "InlineProperty",
			key:  "age",
			want: nil,
		},
		{
			name: "AbsentProperty",
			key:  "missing",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calc.PropertyConnectionPoint(root, tt.key)
			if tt.want == nil {
				if got != nil {
					t.Errorf("anchor = %v, want nil", got)
				}
				return
			}
			if got == nil || *got != *tt.want {
				t.Errorf("anchor = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNodeEntryPoint(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0)
	user := fixtureNodes()[1]

	if got := calc.NodeEntryPoint(user); got != (Point{X: 450, Y: 112}) {
		t.Errorf("entry = %v, want (450, 112)", got)
	}
}

func TestCurvedPath(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0.5)

	got := calc.CurvedPath(Point{X: 250, Y: 126}, Point{X: 450, Y: 112})
	want := "M 250,126 C 350,126 350,112 450,112"
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestCurvedPathLeftward(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0.5)

	// A target left of its source still curves with positive reach.
	got := calc.CurvedPath(Point{X: 400, Y: 100}, Point{X: 200, Y: 300})
	want := "M 400,100 C 500,100 100,300 200,300"
	if got != want {
		t.Errorf("path = %q, want %q", got, want)
	}
}

func TestLinkPath(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0.5)
	nodes := fixtureNodes()
	byID := layout.ByID(nodes)

	link := graph.Link{Source: "root", Target: "user", Type: graph.LinkParentChild}
	path, ok := calc.LinkPath(link, byID)
	if !ok {
		t.Fatal("LinkPath skipped a resolvable link")
	}
	// Starts at the user property anchor, ends at the child's entry point.
	if want := "M 250,126 C 350,126 350,112 450,112"; path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestLinkPathFallbackAnchor(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0.5)
	nodes := fixtureNodes()
	// A target whose terminal segment matches no source property falls
	// back to the source's right-edge vertical center.
	nodes = append(nodes, &layout.PositionedNode{
		Node: graph.Node{ID: "orphan", Path: []string{"orphan"}},
		X:    450, Y: 300, Width: 200, Height: 64,
	})

	path, ok := calc.LinkPath(graph.Link{Source: "root", Target: "orphan"}, layout.ByID(nodes))
	if !ok {
		t.Fatal("LinkPath skipped a resolvable link")
	}
	// Right-edge center of root: (250, 94).
	if want := "M 250,94 C 350,94 350,332 450,332"; path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestLinkPathMissingNodes(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0.5)
	byID := layout.ByID(fixtureNodes())

	for _, link := range []graph.Link{
		{Source: "ghost", Target: "user"},
		{Source: "root", Target: "ghost"},
	} {
		if _, ok := calc.LinkPath(link, byID); ok {
			t.Errorf("link %s->%s resolved against missing node", link.Source, link.Target)
		}
	}
}

func TestLinkPaths(t *testing.T) {
	calc := New(layout.DefaultOptions(), 0.5)
	nodes := fixtureNodes()

	links := []graph.Link{
		{Source: "root", Target: "user", Type: graph.LinkParentChild},
		{Source: "root", Target: "ghost"}, // dangling, skipped
	}

	paths := calc.LinkPaths(links, nodes)
	if len(paths) != 1 {
		t.Fatalf("paths = %d entries, want 1", len(paths))
	}
	if _, ok := paths["root-user"]; !ok {
		t.Error(`missing key "root-user"`)
	}
}
