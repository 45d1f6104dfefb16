// Package pipeline provides the core visualization pipeline for jsoncanvas.
//
// This package implements the complete build → layout → render pipeline that
// the CLI and any embedding application share. Centralizing it keeps behavior
// consistent across entry points and avoids code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: Transform a parsed JSON value into a node/link graph
//  2. Layout: Compute visual positions (hierarchical or force-directed)
//  3. Render: Generate output in various formats (SVG, DOT, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Engine:  "hierarchical",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, value, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/jsoncanvas/pkg/cache"
	"github.com/matzehuels/jsoncanvas/pkg/errors"
	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
	"github.com/matzehuels/jsoncanvas/pkg/layout/force"
	"github.com/matzehuels/jsoncanvas/pkg/linkpath"
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatDOT  = "dot"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the ordered set of supported output formats.
var ValidFormats = []string{FormatSVG, FormatDOT, FormatPNG, FormatJSON}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the visualization pipeline.
// This struct supports JSON serialization for embedding applications.
type Options struct {
	// Build options
	SubgraphPath string `json:"subgraph_path,omitempty"` // Dot-joined path; build only this subtree

	// Layout options
	Engine      string         `json:"engine,omitempty"`
	Geometry    layout.Options `json:"geometry,omitempty"`
	Sim         force.Options  `json:"sim,omitempty"`          // Force-engine tuning
	AutoSpacing bool           `json:"auto_spacing,omitempty"` // Derive spacing from graph shape

	// Path options
	Curvature float64 `json:"curvature,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Include inline properties in DOT labels

	// Refresh bypasses the graph cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks all fields and applies defaults for the full
// pipeline. This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForBuild(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForBuild checks the graph-build fields.
func (o *Options) ValidateForBuild() error {
	if o.SubgraphPath != "" && o.SubgraphPath != graph.RootNodeID {
		if err := errors.ValidateNodePath(o.SubgraphPath); err != nil {
			return err
		}
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	if o.Engine == "" {
		o.Engine = layout.EngineHierarchical
	}
	if err := errors.ValidateEngine(o.Engine,
		[]string{layout.EngineHierarchical, layout.EngineForce}); err != nil {
		return err
	}
	if o.Geometry == (layout.Options{}) {
		o.Geometry = layout.DefaultOptions()
	}
	if err := o.Sim.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Sim.Geometry = o.Geometry
	o.setLoggerDefault()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	for _, f := range o.Formats {
		if err := errors.ValidateOutputFormat(f, ValidFormats); err != nil {
			return err
		}
	}
	if o.Curvature == 0 {
		o.Curvature = linkpath.DefaultCurvature
	}
	o.setLoggerDefault()
	return nil
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// GraphKeyOpts returns cache key options for the build stage.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		SubgraphPath: o.SubgraphPath,
	}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		Engine:       o.Engine,
		NodeSpacing:  o.Geometry.NodeSpacing,
		LevelSpacing: o.Geometry.LevelSpacing,
		Seed:         o.Sim.Seed,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
		Width:  int(o.Sim.Width),
		Height: int(o.Sim.Height),
	}
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this execution in logs and artifacts.
	RunID string

	// Graph is the built node/link graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the positioned layout document.
	Layout layout.Document

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration

	// Force-engine details; zero for hierarchical runs.
	Iterations int
	Converged  bool
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit  bool // Whether the graph came from cache
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}
