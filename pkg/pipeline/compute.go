package pipeline

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/netplot/pkg/centrality"
	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
	"github.com/matzehuels/netplot/pkg/render"
	"github.com/matzehuels/netplot/pkg/scale"
)

// scores holds the three centrality maps for one graph. It is the unit
// cached by the compute stage; assembly into a table is cheap and always
// redone.
type scores struct {
	Degree      map[string]int     `json:"degree"`
	Eigenvector map[string]float64 `json:"eigenvector"`
	Betweenness map[string]float64 `json:"betweenness"`
}

// computeScores derives all three centrality measures from the graph.
func computeScores(g *graph.Graph) (scores, error) {
	ev, err := centrality.Eigenvector(g)
	if err != nil {
		return scores{}, err
	}
	bc, err := centrality.Betweenness(g)
	if err != nil {
		return scores{}, err
	}
	return scores{
		Degree:      centrality.Degree(g),
		Eigenvector: ev,
		Betweenness: bc,
	}, nil
}

// scaleAttributes builds the render options for the requested scaling
// flags. A degenerate range (all degrees or all weights equal) falls back
// to the midpoint of the target range with a warning instead of failing
// the run.
func scaleAttributes(g *graph.Graph, opts Options, logger *log.Logger) (render.Options, error) {
	ropts := render.Options{Width: opts.Width, Height: opts.Height}

	if opts.SizeByDegree {
		nodes := g.Nodes()
		values := make([]float64, len(nodes))
		for i, id := range nodes {
			d, err := g.Degree(id)
			if err != nil {
				return render.Options{}, err
			}
			values[i] = float64(d)
		}
		scaled, err := scale.Rescale(values, NodeSizeMin, NodeSizeMax)
		if errors.Is(err, errors.ErrCodeDegenerateRange) {
			mid := scale.Midpoint(NodeSizeMin, NodeSizeMax)
			logger.Warn("all node degrees equal, using constant node size", "size", mid)
			scaled = make([]float64, len(nodes))
			for i := range scaled {
				scaled[i] = mid
			}
		} else if err != nil {
			return render.Options{}, err
		}
		ropts.NodeSizes = make(map[string]float64, len(nodes))
		for i, id := range nodes {
			ropts.NodeSizes[id] = scaled[i]
		}
	}

	if opts.WidthByWeight {
		edges := g.Edges()
		values := make([]float64, len(edges))
		for i, e := range edges {
			values[i] = e.Weight
		}
		scaled, err := scale.Rescale(values, EdgeWidthMin, EdgeWidthMax)
		if errors.Is(err, errors.ErrCodeDegenerateRange) {
			mid := scale.Midpoint(EdgeWidthMin, EdgeWidthMax)
			logger.Warn("all edge weights equal, using constant edge width", "width", mid)
			scaled = make([]float64, len(edges))
			for i := range scaled {
				scaled[i] = mid
			}
		} else if err != nil {
			return render.Options{}, err
		}
		ropts.EdgeWidths = scaled
	}

	return ropts, nil
}
