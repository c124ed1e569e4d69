package graph

import "container/heap"

// DijkstraFrom returns the weighted shortest-path distance from source to
// every reachable node, treating edge weights as costs. Unreachable nodes
// are absent from the result. Weights are assumed non-negative; callers
// validate that upstream.
func (g *Graph) DijkstraFrom(source string) map[string]float64 {
	dist := make(map[string]float64, len(g.adj))
	if _, ok := g.adj[source]; !ok {
		return dist
	}
	settled := make(map[string]bool, len(g.adj))

	dist[source] = 0
	pq := &pathHeap{{id: source, dist: 0}}
	for pq.Len() > 0 {
		item := heap.Pop(pq).(pathItem)
		if settled[item.id] {
			continue
		}
		settled[item.id] = true

		for nbr, cost := range g.adj[item.id] {
			nd := dist[item.id] + cost
			if cur, seen := dist[nbr]; !seen || nd < cur {
				dist[nbr] = nd
				heap.Push(pq, pathItem{id: nbr, dist: nd})
			}
		}
	}
	return dist
}

type pathItem struct {
	id   string
	dist float64
}

type pathHeap []pathItem

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].dist < h[j].dist }
func (h pathHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *pathHeap) Push(x any)        { *h = append(*h, x.(pathItem)) }
func (h *pathHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
