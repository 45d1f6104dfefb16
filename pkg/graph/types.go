package graph

import (
	"strings"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// RootNodeID is the node ID used for the root of every built graph.
const RootNodeID = "root"

// Node value types.
const (
	TypeObject  = "object"
	TypeArray   = "array"
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
	TypeNull    = "null"
)

// Link types.
const (
	// LinkParentChild connects an object node to one of its container values.
	LinkParentChild = "parent-child"
	// LinkArrayItem connects an array node to one of its container elements.
	LinkArrayItem = "array-item"
)

// Link strength bases per link type. The effective strength decays with the
// target's depth: base × max(0.3, 1 − 0.1·depth).
const (
	strengthBaseParentChild = 1.0
	strengthBaseArrayItem   = 0.8
	strengthFloor           = 0.3
	strengthDepthFalloff    = 0.1
)

// =============================================================================
// Graph - Positioned-Graph Source Structure
// =============================================================================

// Graph is the canonical node/link structure built from a JSON value.
// It is the input to both layout engines and to the link path calculator,
// and doubles as the serialization format for build artifacts.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// IsEmpty reports whether the graph contains no nodes.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }

// NodeByID returns the node with the given ID and true, or a zero Node and
// false if no such node exists.
func (g Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// =============================================================================
// Node - Container Node
// =============================================================================

// Node represents a JSON container (object or array) or a bare primitive root.
// Primitive values nested inside containers never become nodes - they are
// folded into the parent's Properties list instead.
type Node struct {
	ID     string   `json:"id"`               // Dot-joined path ("root" for the root node)
	Key    string   `json:"key"`              // Key or array index under the parent
	Value  any      `json:"value,omitempty"`  // Raw JSON value this node was built from
	Type   string   `json:"type"`             // object, array, string, number, boolean, null
	Path   []string `json:"path,omitempty"`   // Ordered key list from the root
	Parent string   `json:"parent,omitempty"` // Parent node ID (empty for root)
	Depth  int      `json:"depth"`            // 0 for root, parent depth + 1 otherwise
	Size   float64  `json:"size"`             // Visual-weight heuristic from content

	// Children holds the IDs of container values, in property order.
	// Invariant: Children is exactly the ordered subset of Properties
	// with HasChildNode set.
	Children []string `json:"children,omitempty"`

	// Properties lists every entry of the container, inline primitives included.
	Properties []Property `json:"properties,omitempty"`
}

// Property is a single entry of a container node. Primitive entries are
// inline (HasChildNode false); container entries reference their own node.
type Property struct {
	Key          string `json:"key"`
	Value        any    `json:"value,omitempty"`
	Type         string `json:"type"`
	HasChildNode bool   `json:"has_child_node"`
	ChildNodeID  string `json:"child_node_id,omitempty"`
}

// IsContainer reports whether the node represents a JSON object or array.
func (n Node) IsContainer() bool { return n.Type == TypeObject || n.Type == TypeArray }

// PathString returns the dot-joined path, which equals the node ID for all
// non-root nodes.
func (n Node) PathString() string {
	if len(n.Path) == 0 {
		return RootNodeID
	}
	return strings.Join(n.Path, ".")
}

// =============================================================================
// Link - Containment Edge
// =============================================================================

// Link is a directed containment edge between two container nodes.
type Link struct {
	Source   string  `json:"source"`
	Target   string  `json:"target"`
	Type     string  `json:"type"`
	Strength float64 `json:"strength"`
}

// LinkStrength computes the effective strength for a link of the given type
// whose target sits at targetDepth. Deeper targets are attached more loosely,
// with a floor so distant leaves are never free-floating.
func LinkStrength(linkType string, targetDepth int) float64 {
	base := strengthBaseParentChild
	if linkType == LinkArrayItem {
		base = strengthBaseArrayItem
	}
	falloff := 1.0 - strengthDepthFalloff*float64(targetDepth)
	if falloff < strengthFloor {
		falloff = strengthFloor
	}
	return base * falloff
}
