package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
	"github.com/matzehuels/jsoncanvas/pkg/layout/force"
	"github.com/matzehuels/jsoncanvas/pkg/layout/hierarchical"
	"github.com/matzehuels/jsoncanvas/pkg/linkpath"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
)

// GenerateLayout positions a graph with the configured engine and computes
// the curved link paths. The force engine is driven to completion; the
// context cancels a long-running simulation.
func GenerateLayout(ctx context.Context, g graph.Graph, opts Options) (layout.Document, Stats, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Document{}, Stats{}, err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, opts.Engine, len(g.Nodes))

	if opts.AutoSpacing {
		opts.Geometry.NodeSpacing, opts.Geometry.LevelSpacing = hierarchical.OptimalSpacing(g.Nodes)
	}

	var (
		positioned []*layout.PositionedNode
		stats      Stats
		err        error
	)
	switch opts.Engine {
	case layout.EngineForce:
		positioned, stats, err = runForce(ctx, g, opts)
	default:
		positioned = hierarchical.New(opts.Geometry).CalculatePositions(g.Nodes)
	}
	observability.Pipeline().OnLayoutComplete(ctx, opts.Engine, time.Since(start), err)
	if err != nil {
		return layout.Document{}, Stats{}, err
	}

	calc := linkpath.New(opts.Geometry, opts.Curvature)
	doc := layout.Document{
		Engine: opts.Engine,
		Width:  opts.Sim.Width,
		Height: opts.Sim.Height,
		Nodes:  make([]layout.PositionedNode, len(positioned)),
		Paths:  calc.LinkPaths(g.Links, positioned),
	}
	for i, n := range positioned {
		doc.Nodes[i] = *n
	}

	opts.Logger.Debug("computed layout",
		"engine", opts.Engine,
		"nodes", len(doc.Nodes),
		"paths", len(doc.Paths),
		"duration", time.Since(start))

	return doc, stats, nil
}

// runForce drives a force simulation to completion.
func runForce(ctx context.Context, g graph.Graph, opts Options) ([]*layout.PositionedNode, Stats, error) {
	sim, err := force.New(opts.Sim)
	if err != nil {
		return nil, Stats{}, err
	}
	defer sim.Dispose()

	sim.InitializeGraph(g)

	start := time.Now()
	observability.Simulation().OnSimulationStart(ctx, sim.Preset().Name, len(g.Nodes))

	simStats, err := sim.Run(ctx)
	if err != nil {
		return nil, Stats{}, err
	}

	observability.Simulation().OnSimulationEnd(ctx, sim.Preset().Name,
		simStats.Iterations, simStats.Converged, time.Since(start))

	return sim.Nodes(), Stats{
		Iterations: simStats.Iterations,
		Converged:  simStats.Converged,
	}, nil
}
