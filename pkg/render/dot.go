package render

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
	"github.com/matzehuels/netplot/pkg/layout"
)

// dotScale converts unit-square coordinates to Graphviz points.
const dotScale = 500.0

// ToDOT converts the graph to Graphviz DOT with pinned node positions.
// The neato engine is selected via a graph attribute so the positions
// computed by pkg/layout survive rendering instead of being re-laid-out.
func ToDOT(g *graph.Graph, pos map[string]layout.Point, opts Options) string {
	opts.setDefaults()

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"white\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=\"#4682b4\", fontsize=10];\n")
	buf.WriteString("\n")

	for _, id := range g.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", id)}
		if p, ok := pos[id]; ok {
			// Flip Y: DOT's origin is bottom-left, the PNG path's is top-left.
			attrs = append(attrs, fmt.Sprintf("pos=\"%.1f,%.1f!\"", p.X*dotScale, (1-p.Y)*dotScale))
		}
		if opts.NodeSizes != nil {
			if s, ok := opts.NodeSizes[id]; ok {
				// Graphviz width is in inches; keep it proportional to the
				// PNG radius (96 dpi).
				attrs = append(attrs, fmt.Sprintf("width=%.3f", nodeDiameterInches(s)))
			}
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for i, e := range g.Edges() {
		width := DefaultEdgeWidth
		if opts.EdgeWidths != nil {
			width = opts.EdgeWidths[i]
		}
		fmt.Fprintf(&buf, "  %q -- %q [penwidth=%.2f];\n", e.Source, e.Target, width)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeDiameterInches(size float64) float64 {
	const dpi = 96.0
	radius := radiusPx(size)
	return 2 * radius / dpi
}

func radiusPx(size float64) float64 {
	if size <= 0 {
		return 1
	}
	// Same area-to-radius mapping as the PNG path.
	return math.Sqrt(size / math.Pi)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render svg")
	}
	return buf.Bytes(), nil
}
