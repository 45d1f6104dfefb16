package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// layoutOpts holds the command-line flags for the layout command.
type layoutOpts struct {
	output       string  // output file path
	engine       string  // layout engine: "hierarchical" or "force"
	path         string  // dot-joined subgraph path
	autoSpacing  bool    // derive spacing from graph shape
	nodeSpacing  float64 // vertical gap between siblings
	levelSpacing float64 // horizontal gap between depth levels
	seed         int64   // force scatter seed
	iterations   int     // force iteration cap
	watch        bool    // run the force simulation interactively
	refresh      bool    // bypass caches
}

// newLayoutCmd creates the layout command, which computes node positions
// with either the hierarchical or the force engine and writes a layout
// document with curved link paths.
func newLayoutCmd() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "layout [file]",
		Short: "Compute node positions for a JSON document",
		Long: `Layout builds the graph for a JSON document and positions its nodes.

The hierarchical engine (default) arranges nodes left-to-right by depth with
deterministic column packing. The force engine runs a force-directed
simulation tuned by the dominant node type; pass --watch to observe the
simulation converge live.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayout(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "layout engine: hierarchical (default), force")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "lay out only the subtree at this dot-joined path")
	cmd.Flags().BoolVar(&opts.autoSpacing, "auto-spacing", false, "derive spacing from graph shape")
	cmd.Flags().Float64Var(&opts.nodeSpacing, "node-spacing", 0, "vertical gap between siblings")
	cmd.Flags().Float64Var(&opts.levelSpacing, "level-spacing", 0, "horizontal gap between depth levels")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "force scatter seed")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 0, "force iteration cap")
	cmd.Flags().BoolVar(&opts.watch, "watch", false, "watch the force simulation converge (implies --engine force)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches")

	return cmd
}

func runLayout(cmd *cobra.Command, input string, opts *layoutOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runner, err := newRunner(ctx, cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	value, err := loadJSONValue(input)
	if err != nil {
		return err
	}

	popts := pipelineOptions(cfg)
	popts.SubgraphPath = opts.path
	popts.Refresh = opts.refresh
	popts.AutoSpacing = opts.autoSpacing
	if opts.engine != "" {
		popts.Engine = opts.engine
	}
	if opts.watch {
		popts.Engine = layout.EngineForce
	}
	if opts.nodeSpacing > 0 {
		popts.Geometry.NodeSpacing = opts.nodeSpacing
	}
	if opts.levelSpacing > 0 {
		popts.Geometry.LevelSpacing = opts.levelSpacing
	}
	if opts.seed != 0 {
		popts.Sim.Seed = opts.seed
	}
	if opts.iterations > 0 {
		popts.Sim.MaxIterations = opts.iterations
	}

	g, err := runner.Build(ctx, value, popts)
	if err != nil {
		return err
	}
	logger.Debugf("Built graph: %d nodes, %d links", len(g.Nodes), len(g.Links))

	var doc layout.Document
	if opts.watch {
		doc, err = runWatch(ctx, g, popts)
	} else {
		prog := newProgress(logger)
		doc, err = runner.Layout(ctx, g, popts)
		if err == nil {
			prog.done("Computed layout")
		}
	}
	if err != nil {
		return err
	}

	out := outputPath(opts.output, input, "layout.json")
	if out == "" {
		data, err := layout.MarshalDocument(doc)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(data, '\n'))
		return err
	}
	if err := layout.WriteDocumentFile(doc, out); err != nil {
		return err
	}

	printSuccess("Positioned %d nodes (%s engine)", len(doc.Nodes), doc.Engine)
	printFile(out)
	printNewline()
	printNextStep("Render an artifact", "jsoncanvas render "+input)
	return nil
}
