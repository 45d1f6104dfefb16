package pipeline

import (
	"context"
	"strings"
	"time"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
)

// Build transforms a parsed JSON value into a graph. When SubgraphPath is
// set, only the subtree rooted at that path is built.
func Build(ctx context.Context, value any, opts Options) (graph.Graph, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return graph.Graph{}, err
	}

	source := "document"
	if opts.SubgraphPath != "" {
		source = opts.SubgraphPath
	}

	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, source)

	var g graph.Graph
	if opts.SubgraphPath != "" && opts.SubgraphPath != graph.RootNodeID {
		g = graph.BuildSubgraph(value, strings.Split(opts.SubgraphPath, "."))
	} else {
		g = graph.BuildGraph(value)
	}

	observability.Pipeline().OnBuildComplete(ctx, source, len(g.Nodes), time.Since(start), nil)

	opts.Logger.Debug("built graph",
		"nodes", len(g.Nodes),
		"links", len(g.Links),
		"duration", time.Since(start))

	return g, nil
}
