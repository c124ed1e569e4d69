// Package pkg provides the core libraries for netplot network analysis.
//
// # Overview
//
// Netplot analyzes undirected weighted networks given as tab-separated
// edgelists. The typical data flow:
//
//	Edgelist file (Source / Target / Weight)
//	         ↓
//	    [edgelist] package (parse + build)
//	         ↓
//	    [graph] package (adjacency structure, shortest paths)
//	         ↓
//	    [centrality] package (degree, eigenvector, betweenness)
//	         ↓
//	    [report] (result table)   [layout] + [render] (image)
//	         ↓                              ↓
//	    CSV output                   PNG/SVG output
//
// # Quick Start
//
// Analyze a file end to end:
//
//	import "github.com/matzehuels/netplot/pkg/pipeline"
//
//	runner := pipeline.NewRunner(nil, nil, nil, nil)
//	result, err := runner.ExecuteAndWrite(ctx, pipeline.Options{
//	    Input:        "data/friends.csv",
//	    Layout:       "spring",
//	    SizeByDegree: true,
//	})
//
// Or use the pieces directly:
//
//	records, _ := edgelist.ReadFile("data/friends.csv")
//	g := edgelist.Build(records)
//	ev, _ := centrality.Eigenvector(g)
//
// # Main Packages
//
// [edgelist] - Tab-separated edgelist parsing with schema validation.
//
// [graph] - Weighted undirected adjacency structure with deterministic
// node and edge ordering, plus single-source Dijkstra.
//
// [centrality] - The three centrality measures. Eigenvector centrality
// uses shifted power iteration; betweenness uses Brandes' algorithm over
// weighted shortest paths.
//
// [report] - Joins the centrality maps into a per-node table and writes
// it as CSV.
//
// [scale] - Min-max rescaling of raw attributes (degree, weight) into
// visual ranges, with explicit degenerate-range handling.
//
// [layout] - Node positioning: spring (Fruchterman–Reingold), circular,
// kamada_kawai (stress majorization), and random, all deterministic
// under a seed.
//
// [render] - Drawing: native PNG output and DOT export rendered to SVG
// through Graphviz neato with pinned positions.
//
// [pipeline] - Orchestration with per-stage caching and directory
// batching. Used by both the CLI and the HTTP server.
//
// [cache] - Artifact caching keyed by input content hash. File, Redis,
// and null backends.
//
// [store] - Optional MongoDB persistence of run results.
//
// [errors] - Structured errors with machine-readable codes shared by
// every layer.
//
// [edgelist]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/edgelist
// [graph]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/graph
// [centrality]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/centrality
// [report]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/report
// [scale]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/scale
// [layout]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/layout
// [render]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/cache
// [store]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/store
// [errors]: https://pkg.go.dev/github.com/matzehuels/netplot/pkg/errors
package pkg
