package centrality

import "github.com/matzehuels/netplot/pkg/graph"

// Degree returns the number of incident edges for every node.
// Self-loops count once. Weights are ignored.
func Degree(g *graph.Graph) map[string]int {
	out := make(map[string]int, g.NodeCount())
	for _, id := range g.Nodes() {
		out[id] = len(g.Neighbors(id))
	}
	return out
}
