package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: svg, dot, png, json
	engine   string   // layout engine
	path     string   // dot-joined subgraph path
	detailed bool     // include inline properties in DOT labels
	refresh  bool     // bypass caches
}

// newRenderCmd creates the render command, which runs the full
// build → layout → render pipeline and writes one file per format.
func newRenderCmd() *cobra.Command {
	var formatsStr string
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON document as SVG, DOT, PNG, or JSON",
		Long: `Render runs the complete pipeline: it builds the graph, computes a
layout, and generates the requested artifact formats.

Every stage is cached on content hashes, so re-rendering an unchanged
document is cheap. Use --refresh to force recomputation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			return runRender(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, png, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.engine, "engine", "e", "", "layout engine: hierarchical (default), force")
	cmd.Flags().StringVarP(&opts.path, "path", "p", "", "render only the subtree at this dot-joined path")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include inline properties in DOT labels")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass caches")

	return cmd
}

// parseFormats parses the --format flag into a slice of output formats.
// If empty, defaults to nil so the config (and pipeline defaults) apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
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
	popts.Detailed = opts.detailed
	popts.Refresh = opts.refresh
	if opts.engine != "" {
		popts.Engine = opts.engine
	}
	if len(opts.formats) > 0 {
		popts.Formats = opts.formats
	}

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, value, popts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifact(s)", len(result.Artifacts)))

	cached := result.CacheInfo.BuildHit && result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit
	printSuccess("Rendered %s", input)
	printStats(result.Stats.NodeCount, result.Stats.LinkCount, cached)

	for _, format := range popts.Formats {
		data, ok := result.Artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(opts.output, input, format, len(popts.Formats))
		w, err := openOutput(path)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return err
		}
		w.Close()
		if path != "" {
			printFile(path)
		}
	}
	return nil
}

// artifactPath derives the output file for one format. With a single format
// an explicit --output is used verbatim; with multiple formats it acts as a
// base path and each format appends its own extension.
func artifactPath(output, input, format string, formatCount int) string {
	if output != "" && formatCount == 1 {
		return output
	}
	if output != "" {
		return output + "." + format
	}
	path := outputPath("", input, format)
	if path == input {
		// Never clobber the input document (e.g. data.json + json format).
		path = outputPath("", input, "layout.json")
	}
	return path
}
