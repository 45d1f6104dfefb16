// Package dot converts graphs to Graphviz DOT and rasterizes them.
//
// DOT output is useful for piping into external Graphviz tooling; SVG and
// PNG rendering goes through the embedded Graphviz engine, so no system
// binary is required.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes inline properties in node labels.
	// When false, only the node key and type are shown.
	Detailed bool
}

// ToDOT converts a graph to Graphviz DOT format, left-to-right like the
// hierarchical layout.
func ToDOT(g graph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph jsoncanvas {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=12];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, l := range g.Links {
		attrs := ""
		if l.Type == graph.LinkArrayItem {
			attrs = " [style=dashed]"
		}
		fmt.Fprintf(&buf, "  %q -> %q%s;\n", l.Source, l.Target, attrs)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n graph.Node, detailed bool) []string {
	title := n.Key
	if title == "" {
		title = n.ID
	}
	label := fmt.Sprintf("%s (%s)", title, n.Type)

	if detailed {
		var rows []string
		for _, p := range n.Properties {
			if p.HasChildNode {
				continue
			}
			rows = append(rows, fmt.Sprintf("%s: %s", p.Key, graph.PreviewValue(p.Value)))
		}
		if len(rows) > 0 {
			label += "\n" + strings.Join(rows, "\n")
		}
	}

	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Type == graph.TypeArray {
		attrs = append(attrs, "fillcolor=lavender")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG, normalizeViewBox)
}

// RenderPNG renders a DOT graph to PNG using the embedded Graphviz engine.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG, nil)
}

func render(ctx context.Context, dot string, format graphviz.Format, post func([]byte) []byte) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	out := buf.Bytes()
	if post != nil {
		out = post(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the Graphviz SVG header to a zero-origin
// viewBox with explicit pixel dimensions, which embeds cleanly in HTML.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
