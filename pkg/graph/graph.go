package graph

import (
	"fmt"
	"slices"
)

// Graph is an undirected weighted graph keyed by opaque node labels.
//
// Invariants:
//   - each unordered node pair appears at most once
//   - every edge carries a numeric weight
//   - the graph may be disconnected
//
// Graph is safe for concurrent reads but not concurrent writes.
type Graph struct {
	adj map[string]map[string]float64
}

// Edge is one undirected weighted edge. Source and Target are
// interchangeable; accessors report them in lexicographic order.
type Edge struct {
	Source string  `json:"source" bson:"source"`
	Target string  `json:"target" bson:"target"`
	Weight float64 `json:"weight" bson:"weight"`
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string]map[string]float64)}
}

// AddNode ensures the node exists. Adding an existing node is a no-op.
func (g *Graph) AddNode(id string) {
	if _, ok := g.adj[id]; !ok {
		g.adj[id] = make(map[string]float64)
	}
}

// AddEdge adds an undirected edge between u and v, creating the endpoints
// if needed. When the unordered pair already exists the weights are summed,
// so repeated records for the same pair accumulate (the natural reading for
// co-occurrence networks). Self-loops are stored once under the node's own
// adjacency entry.
func (g *Graph) AddEdge(u, v string, weight float64) {
	g.AddNode(u)
	g.AddNode(v)
	g.adj[u][v] += weight
	if u != v {
		g.adj[v][u] += weight
	}
}

// HasNode reports whether id is in the graph.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.adj[id]
	return ok
}

// Weight returns the weight of the edge {u, v} and whether it exists.
func (g *Graph) Weight(u, v string) (float64, bool) {
	w, ok := g.adj[u][v]
	return w, ok
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.adj)
}

// EdgeCount returns the number of distinct unordered edges.
func (g *Graph) EdgeCount() int {
	count := 0
	for u, nbrs := range g.adj {
		for v := range nbrs {
			if u <= v {
				count++
			}
		}
	}
	return count
}

// Nodes returns all node IDs sorted lexicographically for deterministic
// iteration.
func (g *Graph) Nodes() []string {
	ids := make([]string, 0, len(g.adj))
	for id := range g.adj {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Edges returns each unordered edge exactly once, with Source ≤ Target,
// sorted by (Source, Target).
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.EdgeCount())
	for u, nbrs := range g.adj {
		for v, w := range nbrs {
			if u <= v {
				edges = append(edges, Edge{Source: u, Target: v, Weight: w})
			}
		}
	}
	slices.SortFunc(edges, func(a, b Edge) int {
		if a.Source != b.Source {
			if a.Source < b.Source {
				return -1
			}
			return 1
		}
		if a.Target < b.Target {
			return -1
		}
		if a.Target > b.Target {
			return 1
		}
		return 0
	})
	return edges
}

// Neighbors returns the adjacency map of id (neighbor → weight).
// The returned map is the graph's own storage; callers must not mutate it.
func (g *Graph) Neighbors(id string) map[string]float64 {
	return g.adj[id]
}

// Degree returns the number of incident edges of id. A self-loop counts
// once. Returns an error if the node is absent.
func (g *Graph) Degree(id string) (int, error) {
	nbrs, ok := g.adj[id]
	if !ok {
		return 0, fmt.Errorf("node %q not in graph", id)
	}
	return len(nbrs), nil
}
