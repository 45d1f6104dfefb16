// Package graph builds node/link graphs from parsed JSON values.
//
// A graph is the positioned-layout source structure: every JSON object or
// array (including empty ones) becomes a container [Node], every containment
// relation becomes a [Link], and primitive values are folded into their
// parent's property list instead of becoming nodes of their own.
//
// # Building
//
//	g := graph.BuildGraph(value)        // value is an already-parsed JSON value
//	sub := graph.BuildSubgraph(value, []string{"user", "address"})
//	stats := graph.ComputeStats(g)
//
// Parsing and validating raw JSON text is out of scope - callers hand in the
// result of json.Unmarshal (or any equivalent decoder).
//
// # Determinism
//
// Object keys are visited in sorted order, so the same input value always
// produces the same node ordering, IDs and links. Array entries keep their
// index order.
//
// # Serialization
//
// MarshalGraph/UnmarshalGraph and the Read/Write helpers round-trip graphs
// as pretty-printed JSON for caching and CLI artifacts.
package graph
