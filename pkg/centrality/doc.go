// Package centrality computes descriptive centrality measures over
// undirected weighted graphs.
//
// Three measures are provided:
//
//   - [Degree]: incident-edge count per node
//   - [Eigenvector]: power-iteration eigenvector centrality on the
//     weighted adjacency, unit L2 norm
//   - [Betweenness]: Brandes' algorithm over weighted shortest paths,
//     normalized to [0,1] for undirected graphs
//
// Degree ignores weights; betweenness interprets weight as a path cost.
// All three return maps keyed by node ID covering every node in the graph.
package centrality
