package graph

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// =============================================================================
// Graph Construction
// =============================================================================

// BuildGraph converts an already-parsed JSON value into a node/link graph.
//
// A nil value yields an empty graph. Any other value produces at least a
// root node - a bare primitive becomes a single property-less root. Each
// container entry whose value is itself a container (including empty ones)
// becomes a child node plus a containment link; primitive entries are folded
// into the parent's Properties list and never create nodes or links.
//
// Object keys are visited in sorted order so repeated builds of the same
// value produce identical graphs.
func BuildGraph(value any) Graph {
	if value == nil {
		return Graph{}
	}

	b := &builder{}
	b.walk(value, "", nil, "", 0)
	return Graph{Nodes: b.nodes, Links: b.links}
}

// BuildSubgraph builds the full graph for value and extracts the node at the
// given path together with all of its container descendants and the links
// between them. It returns an empty graph when the path is absent or resolves
// to an inline primitive.
func BuildSubgraph(value any, path []string) Graph {
	full := BuildGraph(value)
	if full.IsEmpty() {
		return Graph{}
	}

	rootID := RootNodeID
	if len(path) > 0 {
		rootID = strings.Join(path, ".")
	}
	start, ok := full.NodeByID(rootID)
	if !ok {
		return Graph{}
	}

	// Collect the start node and every container reachable through Children.
	keep := map[string]bool{start.ID: true}
	queue := slices.Clone(start.Children)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if keep[id] {
			continue
		}
		keep[id] = true
		if n, ok := full.NodeByID(id); ok {
			queue = append(queue, n.Children...)
		}
	}

	sub := Graph{}
	for _, n := range full.Nodes {
		if keep[n.ID] {
			sub.Nodes = append(sub.Nodes, n)
		}
	}
	for _, l := range full.Links {
		if keep[l.Source] && keep[l.Target] {
			sub.Links = append(sub.Links, l)
		}
	}
	return sub
}

// =============================================================================
// Internal Walk
// =============================================================================

// builder accumulates nodes and links during a single recursive walk.
// Nodes are appended in depth-first pre-order, so parents always precede
// their children in the output slice.
type builder struct {
	nodes []Node
	links []Link
}

// walk emits the node for value and recurses into its container entries.
// It returns the emitted node's ID.
func (b *builder) walk(value any, key string, path []string, parentID string, depth int) string {
	id := RootNodeID
	if len(path) > 0 {
		id = strings.Join(path, ".")
	}

	idx := len(b.nodes)
	b.nodes = append(b.nodes, Node{
		ID:     id,
		Key:    key,
		Value:  value,
		Type:   ValueType(value),
		Path:   slices.Clone(path),
		Parent: parentID,
		Depth:  depth,
	})

	linkType := LinkParentChild
	if b.nodes[idx].Type == TypeArray {
		linkType = LinkArrayItem
	}

	var props []Property
	var children []string
	for _, entry := range entries(value) {
		if isContainer(entry.value) {
			childID := b.walk(entry.value, entry.key, append(slices.Clone(path), entry.key), id, depth+1)
			props = append(props, Property{
				Key:          entry.key,
				Value:        entry.value,
				Type:         ValueType(entry.value),
				HasChildNode: true,
				ChildNodeID:  childID,
			})
			children = append(children, childID)
			b.links = append(b.links, Link{
				Source:   id,
				Target:   childID,
				Type:     linkType,
				Strength: LinkStrength(linkType, depth+1),
			})
		} else {
			props = append(props, Property{
				Key:   entry.key,
				Value: entry.value,
				Type:  ValueType(entry.value),
			})
		}
	}

	b.nodes[idx].Properties = props
	b.nodes[idx].Children = children
	b.nodes[idx].Size = nodeSize(b.nodes[idx])
	return id
}

// entry is a single key/value pair of a container in visit order.
type entry struct {
	key   string
	value any
}

// entries lists the container's key/value pairs: sorted keys for objects,
// index order for arrays, nothing for primitives.
func entries(value any) []entry {
	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		out := make([]entry, len(keys))
		for i, k := range keys {
			out[i] = entry{key: k, value: v[k]}
		}
		return out
	case []any:
		out := make([]entry, len(v))
		for i, item := range v {
			out[i] = entry{key: strconv.Itoa(i), value: item}
		}
		return out
	default:
		return nil
	}
}

// ValueType classifies a parsed JSON value into one of the node type
// constants. Unknown Go types are treated as strings of their formatted form.
func ValueType(value any) string {
	switch value.(type) {
	case map[string]any:
		return TypeObject
	case []any:
		return TypeArray
	case string:
		return TypeString
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return TypeNumber
	case bool:
		return TypeBoolean
	case nil:
		return TypeNull
	default:
		return TypeString
	}
}

func isContainer(value any) bool {
	t := ValueType(value)
	return t == TypeObject || t == TypeArray
}

// nodeSize derives the visual weight of a node from its content: one unit
// per property plus a capped contribution from inline text length. Layout
// engines use this for collision radii, not for box dimensions.
func nodeSize(n Node) float64 {
	size := 1.0 + float64(len(n.Properties))
	for _, p := range n.Properties {
		if !p.HasChildNode {
			size += math.Min(float64(len(PreviewValue(p.Value))), 24) / 24
		}
	}
	return size
}

// PreviewValue renders a primitive value the way a node card displays it.
// Containers preview as their bracket pair.
func PreviewValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case map[string]any:
		return "{…}"
	case []any:
		return "[…]"
	default:
		return fmt.Sprintf("%v", v)
	}
}
