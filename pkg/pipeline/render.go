package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
	"github.com/matzehuels/jsoncanvas/pkg/observability"
	"github.com/matzehuels/jsoncanvas/pkg/render/dot"
	svgrender "github.com/matzehuels/jsoncanvas/pkg/render/svg"
)

// RenderFromLayout generates all requested artifact formats from a
// positioned layout. SVG and JSON come straight from the document; DOT and
// PNG go through Graphviz using the graph's structure.
func RenderFromLayout(ctx context.Context, doc layout.Document, g graph.Graph, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)

	artifacts := make(map[string][]byte, len(opts.Formats))
	var err error
	for _, format := range opts.Formats {
		if artifacts[format], err = renderFormat(ctx, doc, g, opts, format); err != nil {
			break
		}
	}

	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("rendered artifacts",
		"formats", opts.Formats,
		"duration", time.Since(start))

	return artifacts, nil
}

func renderFormat(ctx context.Context, doc layout.Document, g graph.Graph, opts Options, format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svgrender.RenderBytes(doc, svgrender.Options{Geometry: opts.Geometry})
	case FormatDOT:
		return []byte(dot.ToDOT(g, dot.Options{Detailed: opts.Detailed})), nil
	case FormatPNG:
		return dot.RenderPNG(ctx, dot.ToDOT(g, dot.Options{Detailed: opts.Detailed}))
	default: // FormatJSON, already validated
		return layout.MarshalDocument(doc)
	}
}
