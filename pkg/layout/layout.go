// Package layout defines the shared geometry model for the layout engines.
//
// Both engines consume measured nodes ([PositionedNode], produced by
// [Measure]) and write x/y coordinates back into them. The hierarchical
// engine is a pure synchronous function; the force engine relaxes positions
// over externally-driven ticks. See the hierarchical and force subpackages.
package layout

import (
	"github.com/matzehuels/jsoncanvas/pkg/graph"
)

// =============================================================================
// Engine Names
// =============================================================================

// Layout engine identifiers, used by the pipeline and the CLI.
const (
	EngineHierarchical = "hierarchical"
	EngineForce        = "force"
)

// =============================================================================
// Options - Geometry Constants
// =============================================================================

// Default geometry. The spacing baselines (node 80, level 200) are canonical;
// OptimalSpacing may raise them but never goes below these floors.
const (
	DefaultNodeWidth    = 200.0
	DefaultNodeHeight   = 40.0
	DefaultHeaderHeight = 40.0
	DefaultRowHeight    = 24.0
	DefaultPaddingLeft  = 50.0
	DefaultPaddingTop   = 50.0
	DefaultNodeSpacing  = 80.0
	DefaultLevelSpacing = 200.0
)

// Options carries the geometry constants supplied by the rendering layer.
// The zero value is not usable - start from DefaultOptions.
type Options struct {
	NodeWidth    float64 `json:"node_width"`    // Fixed card width
	NodeHeight   float64 `json:"node_height"`   // Minimum card height
	HeaderHeight float64 `json:"header_height"` // Title band above property rows
	RowHeight    float64 `json:"row_height"`    // Height of one property row
	PaddingLeft  float64 `json:"padding_left"`  // Canvas left margin
	PaddingTop   float64 `json:"padding_top"`   // Canvas top margin
	NodeSpacing  float64 `json:"node_spacing"`  // Vertical gap between stacked siblings
	LevelSpacing float64 `json:"level_spacing"` // Horizontal gap between depth levels
}

// DefaultOptions returns the default geometry constants.
func DefaultOptions() Options {
	return Options{
		NodeWidth:    DefaultNodeWidth,
		NodeHeight:   DefaultNodeHeight,
		HeaderHeight: DefaultHeaderHeight,
		RowHeight:    DefaultRowHeight,
		PaddingLeft:  DefaultPaddingLeft,
		PaddingTop:   DefaultPaddingTop,
		NodeSpacing:  DefaultNodeSpacing,
		LevelSpacing: DefaultLevelSpacing,
	}
}

// =============================================================================
// PositionedNode
// =============================================================================

// PositionedNode is a graph node plus box geometry and, under simulation,
// velocity. Layout engines mutate the position fields in place; the embedded
// node data is never modified.
type PositionedNode struct {
	graph.Node

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Velocity components, meaningful only during force simulation.
	VX float64 `json:"vx,omitempty"`
	VY float64 `json:"vy,omitempty"`
}

// CenterX returns the horizontal center of the node box.
func (n *PositionedNode) CenterX() float64 { return n.X + n.Width/2 }

// CenterY returns the vertical center of the node box.
func (n *PositionedNode) CenterY() float64 { return n.Y + n.Height/2 }

// Measure assigns box dimensions to every node: fixed width, height derived
// from the property count (header plus one row per property, floored at the
// minimum node height). Existing x/y values are preserved so externally
// restored positions survive measurement.
func Measure(nodes []graph.Node, opts Options) []*PositionedNode {
	out := make([]*PositionedNode, len(nodes))
	for i, n := range nodes {
		h := opts.HeaderHeight + float64(len(n.Properties))*opts.RowHeight
		if h < opts.NodeHeight {
			h = opts.NodeHeight
		}
		out[i] = &PositionedNode{
			Node:   n,
			Width:  opts.NodeWidth,
			Height: h,
		}
	}
	return out
}

// ByID builds an ID lookup map over positioned nodes.
func ByID(nodes []*PositionedNode) map[string]*PositionedNode {
	m := make(map[string]*PositionedNode, len(nodes))
	for _, n := range nodes {
		m[n.ID] = n
	}
	return m
}
