package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
)

// buildOpts holds the command-line flags for the build command.
type buildOpts struct {
	output  string // output file path (default: input with .graph.json, "-" for stdout)
	path    string // dot-joined path; build only this subtree
	refresh bool   // bypass the graph cache
}

// newBuildCmd creates the build command, which transforms a JSON document
// into a node/link graph and writes it as JSON.
func newBuildCmd() *cobra.Command {
	var opts buildOpts

	cmd := &cobra.Command{
		Use:   "build [file]",
		Short: "Transform a JSON document into a node/link graph",
		Long: `Build parses a JSON document and produces the node/link graph that the
layout engines consume: objects and arrays become container nodes, primitive
values become rows of their parent, and containment becomes weighted links.

Pass "-" to read the document from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: derived from input)")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "build only the subtree at this dot-joined path")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass the graph cache")

	return cmd
}

func runBuild(cmd *cobra.Command, input string, opts *buildOpts) error {
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

	prog := newProgress(logger)
	popts := pipelineOptions(cfg)
	popts.SubgraphPath = opts.path
	popts.Refresh = opts.refresh

	g, hit, err := runner.BuildWithCacheInfo(ctx, value, popts)
	if err != nil {
		return err
	}
	prog.done("Built graph")

	out := outputPath(opts.output, input, "graph.json")
	w, err := openOutput(out)
	if err != nil {
		return err
	}
	defer w.Close()

	if err := graph.WriteGraph(g, w); err != nil {
		return err
	}

	if out != "" {
		printSuccess("Built graph from %s", input)
		printStats(len(g.Nodes), len(g.Links), hit)
		printFile(out)
		printNewline()
		printNextStep("Compute positions", "jsoncanvas layout "+input)
	}
	return nil
}
