// Package linkpath computes curved SVG path geometry for graph links.
//
// A link leaves its source node at the anchor of the property that owns the
// child (right edge, centered on the property's row) and enters the target
// at the left-edge vertical center. The connecting curve is a cubic Bezier
// whose control points extend horizontally, producing an S-curve for
// left-to-right layouts.
package linkpath

import (
	"fmt"
	"math"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// DefaultCurvature is the horizontal control-point reach as a fraction of
// the endpoint distance.
const DefaultCurvature = 0.5

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Calculator resolves link endpoints against positioned nodes and renders
// curved paths. It owns the geometry constants the anchors derive from.
type Calculator struct {
	geo       layout.Options
	curvature float64
}

// New creates a path calculator. A non-positive curvature falls back to the
// default.
func New(geo layout.Options, curvature float64) *Calculator {
	if curvature <= 0 {
		curvature = DefaultCurvature
	}
	return &Calculator{geo: geo, curvature: curvature}
}

// PropertyConnectionPoint returns the anchor of the named property on the
// node's right edge, vertically centered on the property's row. It returns
// nil when the property is absent or does not own a child node.
func (c *Calculator) PropertyConnectionPoint(n *layout.PositionedNode, propertyKey string) *Point {
	for i, p := range n.Properties {
		if p.Key != propertyKey {
			continue
		}
		if !p.HasChildNode {
			return nil
		}
		return &Point{
			X: n.X + n.Width,
			Y: n.Y + c.geo.HeaderHeight + float64(i)*c.geo.RowHeight + c.geo.RowHeight/2,
		}
	}
	return nil
}

// NodeEntryPoint returns where links enter a node: the left-edge vertical
// center.
func (c *Calculator) NodeEntryPoint(n *layout.PositionedNode) Point {
	return Point{X: n.X, Y: n.Y + n.Height/2}
}

// CurvedPath renders a cubic Bezier between two points. Control points sit
// at each endpoint's Y, offset horizontally by the curvature fraction of
// the X distance.
func (c *Calculator) CurvedPath(src, dst Point) string {
	reach := math.Abs(dst.X-src.X) * c.curvature
	return fmt.Sprintf("M %g,%g C %g,%g %g,%g %g,%g",
		src.X, src.Y,
		src.X+reach, src.Y,
		dst.X-reach, dst.Y,
		dst.X, dst.Y)
}

// LinkPath computes the curved path for a single link. The source anchor is
// the property matching the target's terminal path segment; when no
// property matches, the source's right-edge vertical center is used. A link
// whose source or target is missing from the node set yields ok=false and
// is meant to be skipped, never to abort a batch.
func (c *Calculator) LinkPath(l graph.Link, byID map[string]*layout.PositionedNode) (string, bool) {
	src, ok := byID[l.Source]
	if !ok {
		return "", false
	}
	dst, ok := byID[l.Target]
	if !ok {
		return "", false
	}

	start := Point{X: src.X + src.Width, Y: src.Y + src.Height/2}
	if len(dst.Path) > 0 {
		if anchor := c.PropertyConnectionPoint(src, dst.Path[len(dst.Path)-1]); anchor != nil {
			start = *anchor
		}
	}

	return c.CurvedPath(start, c.NodeEntryPoint(dst)), true
}

// LinkPaths computes paths for a whole link list, keyed by
// "sourceId-targetId". Dangling links are skipped.
func (c *Calculator) LinkPaths(links []graph.Link, nodes []*layout.PositionedNode) map[string]string {
	byID := layout.ByID(nodes)

	paths := make(map[string]string, len(links))
	for _, l := range links {
		if path, ok := c.LinkPath(l, byID); ok {
			paths[l.Source+"-"+l.Target] = path
		}
	}
	return paths
}
