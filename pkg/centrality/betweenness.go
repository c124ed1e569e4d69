package centrality

import (
	"container/heap"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
)

// Betweenness computes normalized betweenness centrality for all nodes
// using Brandes' algorithm. Edge weights are interpreted as traversal
// costs, so the shortest-path phase is Dijkstra with a lazy-decrease-key
// min-heap rather than plain BFS.
//
// Scores are normalized by (n-1)*(n-2), which maps the double-counted
// ordered-pair accumulation of an undirected graph onto [0, 1].
//
// Returns an INVALID_INPUT error for an empty graph and a
// COMPUTATION_ERROR for NaN or negative weights.
func Betweenness(g *graph.Graph) (map[string]float64, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "betweenness centrality requires a non-empty graph")
	}
	if err := checkWeights(g); err != nil {
		return nil, err
	}

	cb := make(map[string]float64, n)
	for _, id := range g.Nodes() {
		cb[id] = 0
	}
	if n < 3 {
		return cb, nil
	}

	for _, s := range g.Nodes() {
		stack, sigma, pred := brandesDijkstra(g, s)
		brandesAccumulate(s, stack, sigma, pred, cb)
	}

	normFactor := float64((n - 1) * (n - 2))
	for id := range cb {
		cb[id] /= normFactor
	}

	return cb, nil
}

// brandesDijkstra performs the shortest-path phase of Brandes' algorithm
// from source s. It returns the settle-order stack (for back-propagation),
// shortest-path counts (sigma), and predecessor lists (pred).
func brandesDijkstra(g *graph.Graph, s string) ([]string, map[string]float64, map[string][]string) {
	n := g.NodeCount()
	stack := make([]string, 0, n)
	pred := make(map[string][]string, n)
	sigma := make(map[string]float64, n)
	dist := make(map[string]float64, n)
	settled := make(map[string]bool, n)

	sigma[s] = 1
	dist[s] = 0

	pq := &distHeap{{id: s, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(distItem)
		v := item.id
		if settled[v] {
			continue // stale heap entry
		}
		settled[v] = true
		stack = append(stack, v)

		for w, cost := range g.Neighbors(v) {
			nd := dist[v] + cost
			dw, seen := dist[w]
			switch {
			case !seen || nd < dw:
				dist[w] = nd
				sigma[w] = sigma[v]
				pred[w] = []string{v}
				heap.Push(pq, distItem{id: w, dist: nd})
			case nd == dw && !settled[w]:
				sigma[w] += sigma[v]
				pred[w] = append(pred[w], v)
			}
		}
	}

	return stack, sigma, pred
}

// brandesAccumulate performs the back-propagation phase of Brandes'
// algorithm, accumulating pair-dependency values into the centrality map.
func brandesAccumulate(s string, stack []string, sigma map[string]float64, pred map[string][]string, cb map[string]float64) {
	delta := make(map[string]float64, len(stack))

	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range pred[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1 + delta[w])
		}
		if w != s {
			cb[w] += delta[w]
		}
	}
}

// distItem is one lazy-decrease-key heap entry.
type distItem struct {
	id   string
	dist float64
}

type distHeap []distItem

func (h distHeap) Len() int           { return len(h) }
func (h distHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h distHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *distHeap) Push(x any)        { *h = append(*h, x.(distItem)) }
func (h *distHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
