package centrality

import (
	"math"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
)

// Power-iteration defaults, matching the usual library convention.
const (
	// MaxIterations bounds the power iteration.
	MaxIterations = 100

	// Tolerance is the per-node convergence tolerance; the iteration stops
	// when the L1 change drops below NodeCount*Tolerance.
	Tolerance = 1e-6
)

// Eigenvector computes eigenvector centrality by power iteration on the
// weighted adjacency matrix, shifted by the identity so that bipartite
// graphs converge. The result is normalized to unit L2 norm.
//
// Isolated nodes are fixed at score 0 and excluded from the iteration;
// under the shifted iteration their mass would decay to zero anyway, this
// just makes the policy explicit.
//
// Returns an INVALID_INPUT error for an empty graph, a COMPUTATION_ERROR
// if an edge weight is NaN or negative, and a CONVERGENCE_ERROR if the
// iteration does not converge within MaxIterations.
func Eigenvector(g *graph.Graph) (map[string]float64, error) {
	return eigenvector(g, MaxIterations, Tolerance)
}

func eigenvector(g *graph.Graph, maxIter int, tol float64) (map[string]float64, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "eigenvector centrality requires a non-empty graph")
	}
	if err := checkWeights(g); err != nil {
		return nil, err
	}

	scores := make(map[string]float64, n)

	// Partition off isolated nodes; they keep score 0.
	var active []string
	for _, id := range g.Nodes() {
		if len(g.Neighbors(id)) == 0 {
			scores[id] = 0
		} else {
			active = append(active, id)
		}
	}
	if len(active) == 0 {
		// Edgeless graph: every score is 0.
		return scores, nil
	}

	x := make(map[string]float64, len(active))
	for _, id := range active {
		x[id] = 1.0 / float64(len(active))
	}

	for iter := 0; iter < maxIter; iter++ {
		// x' = (A + I) x
		next := make(map[string]float64, len(active))
		for _, id := range active {
			next[id] = x[id]
		}
		for _, id := range active {
			for nbr, w := range g.Neighbors(id) {
				next[nbr] += x[id] * w
			}
		}

		// Normalize to unit L2 norm.
		var norm float64
		for _, v := range next {
			norm += v * v
		}
		norm = math.Sqrt(norm)
		if norm == 0 {
			norm = 1
		}
		for id := range next {
			next[id] /= norm
		}

		var change float64
		for id, v := range next {
			change += math.Abs(v - x[id])
		}
		x = next

		if change < float64(n)*tol {
			for id, v := range x {
				scores[id] = v
			}
			return scores, nil
		}
	}

	return nil, errors.New(errors.ErrCodeConvergence,
		"eigenvector centrality did not converge within %d iterations (tolerance %g)", maxIter, tol)
}

// checkWeights guards against weights that pass input parsing but poison
// the computation (NaN parses as a float, negatives break shortest paths).
func checkWeights(g *graph.Graph) error {
	for _, e := range g.Edges() {
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) {
			return errors.New(errors.ErrCodeComputation, "edge %s-%s has non-finite weight", e.Source, e.Target)
		}
		if e.Weight < 0 {
			return errors.New(errors.ErrCodeComputation, "edge %s-%s has negative weight %v", e.Source, e.Target, e.Weight)
		}
	}
	return nil
}
