package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
)

// newStatsCmd creates the stats command, which summarizes the shape of the
// graph a JSON document produces without laying it out.
func newStatsCmd() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Show graph statistics for a JSON document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd, args[0], path)
		},
	}

	cmd.Flags().StringVarP(&path, "path", "p", "", "summarize only the subtree at this dot-joined path")

	return cmd
}

func runStats(cmd *cobra.Command, input, subgraphPath string) error {
	ctx := cmd.Context()

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
	popts.SubgraphPath = subgraphPath

	g, err := runner.Build(ctx, value, popts)
	if err != nil {
		return err
	}

	stats := graph.ComputeStats(g)

	fmt.Println(StyleTitle.Render("Graph Statistics"))
	fmt.Println(statsTable(stats))
	return nil
}

// statsTable renders the computed stats as a bordered two-column table.
func statsTable(stats graph.Stats) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{
		{"Nodes", fmt.Sprintf("%d", stats.NodeCount)},
		{"Links", fmt.Sprintf("%d", stats.LinkCount)},
		{"Max depth", fmt.Sprintf("%d", stats.MaxDepth)},
		{"Avg children", fmt.Sprintf("%.2f", stats.AvgChildren)},
		{"Types", formatTypeCounts(stats.TypeCounts)},
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Metric", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

// formatTypeCounts renders the per-type node counts as "object: 4, array: 2".
// Types are sorted by count (descending), then name, for stable output.
func formatTypeCounts(counts map[string]int) string {
	type entry struct {
		name  string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for name, count := range counts {
		entries = append(entries, entry{name, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].name < entries[j].name
	})

	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = fmt.Sprintf("%s: %d", e.name, e.count)
	}
	return strings.Join(parts, ", ")
}
