// Package render draws a positioned graph to raster or vector output.
//
// The PNG path draws nodes, edges, and labels directly. The SVG path goes
// through Graphviz: the graph is exported as DOT with pinned positions and
// rendered by the neato engine, which honors them.
package render

import (
	"bytes"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
	"github.com/matzehuels/netplot/pkg/layout"
)

// Default visual constants, used when attribute scaling is not requested.
const (
	// DefaultNodeSize is the node size in area units (radius = sqrt(size/pi) px).
	DefaultNodeSize = 2000.0

	// DefaultEdgeWidth is the stroke width in pixels.
	DefaultEdgeWidth = 0.75

	// DefaultWidth is the default frame width in pixels.
	DefaultWidth = 800

	// DefaultHeight is the default frame height in pixels.
	DefaultHeight = 600
)

// frameMargin keeps the largest node fully inside the frame.
const frameMargin = 60.0

// Options configures rendering. Zero values fall back to the defaults
// above; nil attribute maps mean constant default size/width.
type Options struct {
	Width  int
	Height int

	// NodeSizes maps node ID to a size in area units. Nodes absent from
	// the map (or a nil map) use DefaultNodeSize.
	NodeSizes map[string]float64

	// EdgeWidths maps canonical edges (as returned by graph.Edges) to a
	// stroke width by index. Nil means DefaultEdgeWidth for every edge.
	EdgeWidths []float64
}

func (o *Options) setDefaults() {
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
}

// RenderPNG draws the graph into a PNG image. Every node is labeled with
// its identifier. Positions must cover every node of g.
func RenderPNG(g *graph.Graph, pos map[string]layout.Point, opts Options) ([]byte, error) {
	opts.setDefaults()

	edges := g.Edges()
	if opts.EdgeWidths != nil && len(opts.EdgeWidths) != len(edges) {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"edge width array has %d entries for %d edges", len(opts.EdgeWidths), len(edges))
	}
	for _, id := range g.Nodes() {
		if _, ok := pos[id]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "no position for node %q", id)
		}
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	place := func(p layout.Point) (float64, float64) {
		x := frameMargin + p.X*(float64(opts.Width)-2*frameMargin)
		y := frameMargin + p.Y*(float64(opts.Height)-2*frameMargin)
		return x, y
	}

	// Edges first so nodes paint over them.
	dc.SetRGB(0.6, 0.6, 0.6)
	for i, e := range edges {
		width := DefaultEdgeWidth
		if opts.EdgeWidths != nil {
			width = opts.EdgeWidths[i]
		}
		x1, y1 := place(pos[e.Source])
		x2, y2 := place(pos[e.Target])
		dc.SetLineWidth(width)
		dc.DrawLine(x1, y1, x2, y2)
		dc.Stroke()
	}

	for _, id := range g.Nodes() {
		size := DefaultNodeSize
		if opts.NodeSizes != nil {
			if s, ok := opts.NodeSizes[id]; ok {
				size = s
			}
		}
		radius := math.Sqrt(size / math.Pi)
		x, y := place(pos[id])

		dc.SetRGB(0.27, 0.51, 0.71) // steel blue fill
		dc.DrawCircle(x, y, radius)
		dc.Fill()
		dc.SetRGB(0.15, 0.3, 0.45)
		dc.SetLineWidth(1)
		dc.DrawCircle(x, y, radius)
		dc.Stroke()

		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(id, x, y-radius-6, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
