// Package svg renders a positioned layout to a standalone SVG document.
//
// Nodes are drawn as cards: a type-colored header band with the node key,
// followed by one row per property. Links are drawn as the precomputed
// cubic Bezier paths from the layout document, so the picture matches the
// geometry the path calculator produced.
package svg

import (
	"bytes"
	"fmt"
	"io"
	"slices"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/jsoncanvas/pkg/graph"
	"github.com/matzehuels/jsoncanvas/pkg/layout"
)

// Canvas padding added around the node extents when the document carries
// no explicit dimensions.
const extentPadding = 50

// Palette keyed by node type.
var typeColors = map[string]string{
	graph.TypeObject:  "#4a90d9",
	graph.TypeArray:   "#8e6cc0",
	graph.TypeString:  "#50a162",
	graph.TypeNumber:  "#c28b37",
	graph.TypeBoolean: "#c25b4e",
	graph.TypeNull:    "#8a8a8a",
}

const (
	cardFill   = "#ffffff"
	cardStroke = "#d0d0d8"
	linkStroke = "#9aa3b2"
	textColor  = "#2b2b33"
	headerText = "#ffffff"
)

// Options configures SVG rendering.
type Options struct {
	// Geometry must match the options the layout was computed with, so
	// property rows line up with the link anchors.
	Geometry layout.Options
}

// Render writes the layout as an SVG document.
func Render(doc layout.Document, opts Options, w io.Writer) error {
	if opts.Geometry == (layout.Options{}) {
		opts.Geometry = layout.DefaultOptions()
	}

	width, height := canvasSize(doc)
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#f7f7fa")

	// Links first so cards cover the path ends.
	for _, key := range sortedPathKeys(doc.Paths) {
		canvas.Path(doc.Paths[key], fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", linkStroke))
	}

	for i := range doc.Nodes {
		drawCard(canvas, &doc.Nodes[i], opts.Geometry)
	}

	canvas.End()
	return nil
}

// RenderBytes renders the layout into a byte slice.
func RenderBytes(doc layout.Document, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(doc, opts, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// drawCard draws one node: rounded card, header band, property rows.
func drawCard(canvas *svg.SVG, n *layout.PositionedNode, geo layout.Options) {
	x, y := int(n.X), int(n.Y)
	w, h := int(n.Width), int(n.Height)
	header := int(geo.HeaderHeight)
	row := int(geo.RowHeight)

	color, ok := typeColors[n.Type]
	if !ok {
		color = typeColors[graph.TypeNull]
	}

	canvas.Roundrect(x, y, w, h, 6, 6,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", cardFill, cardStroke))
	canvas.Roundrect(x, y, w, header, 6, 6, fmt.Sprintf("fill:%s", color))

	title := n.Key
	if title == "" {
		title = n.ID
	}
	canvas.Text(x+10, y+header/2+5, title,
		fmt.Sprintf("font-family:monospace;font-size:13px;font-weight:bold;fill:%s", headerText))

	for i, p := range n.Properties {
		label := p.Key
		if p.HasChildNode {
			label += " ▸"
		} else {
			label += ": " + graph.PreviewValue(p.Value)
		}
		canvas.Text(x+10, y+header+i*row+row/2+4, label,
			fmt.Sprintf("font-family:monospace;font-size:11px;fill:%s", textColor))
	}
}

// canvasSize prefers the document's dimensions and otherwise derives them
// from the node extents.
func canvasSize(doc layout.Document) (int, int) {
	if doc.Width > 0 && doc.Height > 0 {
		return int(doc.Width), int(doc.Height)
	}

	var maxX, maxY float64
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		if r := n.X + n.Width; r > maxX {
			maxX = r
		}
		if b := n.Y + n.Height; b > maxY {
			maxY = b
		}
	}
	return int(maxX) + extentPadding, int(maxY) + extentPadding
}

// sortedPathKeys returns path map keys in a stable order so output is
// byte-for-byte reproducible.
func sortedPathKeys(paths map[string]string) []string {
	keys := make([]string, 0, len(paths))
	for k := range paths {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
