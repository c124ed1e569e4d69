package centrality

import (
	"math"
	"testing"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
)

const epsilon = 1e-4

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func triangle() *graph.Graph {
	g := graph.New()
	g.AddEdge("A", "B", 1.0)
	g.AddEdge("B", "C", 2.0)
	g.AddEdge("A", "C", 1.5)
	return g
}

func star() *graph.Graph {
	g := graph.New()
	g.AddEdge("hub", "a", 1)
	g.AddEdge("hub", "b", 1)
	g.AddEdge("hub", "c", 1)
	return g
}

func TestDegree(t *testing.T) {
	tests := []struct {
		name  string
		build func() *graph.Graph
		want  map[string]int
	}{
		{
			name:  "Triangle",
			build: triangle,
			want:  map[string]int{"A": 2, "B": 2, "C": 2},
		},
		{
			name:  "Star",
			build: star,
			want:  map[string]int{"hub": 3, "a": 1, "b": 1, "c": 1},
		},
		{
			name: "WithIsolated",
			build: func() *graph.Graph {
				g := graph.New()
				g.AddEdge("a", "b", 1)
				g.AddNode("island")
				return g
			},
			want: map[string]int{"a": 1, "b": 1, "island": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Degree(tt.build())
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for id, want := range tt.want {
				if got[id] != want {
					t.Errorf("Degree[%s] = %d, want %d", id, got[id], want)
				}
			}
		})
	}
}

func TestEigenvectorTriangle(t *testing.T) {
	g := graph.New()
	g.AddEdge("A", "B", 1)
	g.AddEdge("B", "C", 1)
	g.AddEdge("A", "C", 1)

	ev, err := Eigenvector(g)
	if err != nil {
		t.Fatalf("Eigenvector: %v", err)
	}

	// Symmetric graph: all nodes share the same score, vector has unit norm.
	want := 1 / math.Sqrt(3)
	for id, score := range ev {
		if !almostEqual(score, want) {
			t.Errorf("ev[%s] = %v, want %v", id, score, want)
		}
	}
}

func TestEigenvectorStar(t *testing.T) {
	ev, err := Eigenvector(star())
	if err != nil {
		t.Fatalf("Eigenvector: %v", err)
	}

	// K_{1,3}: hub = 1/sqrt(2), each leaf = 1/sqrt(6).
	if !almostEqual(ev["hub"], 1/math.Sqrt(2)) {
		t.Errorf("ev[hub] = %v, want %v", ev["hub"], 1/math.Sqrt(2))
	}
	for _, leaf := range []string{"a", "b", "c"} {
		if !almostEqual(ev[leaf], 1/math.Sqrt(6)) {
			t.Errorf("ev[%s] = %v, want %v", leaf, ev[leaf], 1/math.Sqrt(6))
		}
	}
}

func TestEigenvectorUnitNorm(t *testing.T) {
	ev, err := Eigenvector(triangle())
	if err != nil {
		t.Fatal(err)
	}

	var sumSq float64
	for _, v := range ev {
		if v < 0 {
			t.Errorf("negative score %v", v)
		}
		sumSq += v * v
	}
	if !almostEqual(sumSq, 1) {
		t.Errorf("squared norm = %v, want 1", sumSq)
	}
}

func TestEigenvectorIsolatedNode(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddNode("island")

	ev, err := Eigenvector(g)
	if err != nil {
		t.Fatal(err)
	}
	if ev["island"] != 0 {
		t.Errorf("ev[island] = %v, want 0", ev["island"])
	}
	if len(ev) != 3 {
		t.Errorf("len(ev) = %d, want 3", len(ev))
	}
}

func TestEigenvectorEdgeless(t *testing.T) {
	g := graph.New()
	g.AddNode("a")
	g.AddNode("b")

	ev, err := Eigenvector(g)
	if err != nil {
		t.Fatal(err)
	}
	for id, v := range ev {
		if v != 0 {
			t.Errorf("ev[%s] = %v, want 0", id, v)
		}
	}
}

func TestEigenvectorEmptyGraph(t *testing.T) {
	_, err := Eigenvector(graph.New())
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestBetweennessPath(t *testing.T) {
	g := graph.New()
	g.AddEdge("A", "B", 1)
	g.AddEdge("B", "C", 1)

	bc, err := Betweenness(g)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(bc["B"], 1.0) {
		t.Errorf("bc[B] = %v, want 1.0", bc["B"])
	}
	if bc["A"] != 0 || bc["C"] != 0 {
		t.Errorf("endpoints should be 0, got A=%v C=%v", bc["A"], bc["C"])
	}
}

func TestBetweennessStar(t *testing.T) {
	bc, err := Betweenness(star())
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(bc["hub"], 1.0) {
		t.Errorf("bc[hub] = %v, want 1.0", bc["hub"])
	}
	for _, leaf := range []string{"a", "b", "c"} {
		if bc[leaf] != 0 {
			t.Errorf("bc[%s] = %v, want 0", leaf, bc[leaf])
		}
	}
}

func TestBetweennessRespectsWeights(t *testing.T) {
	// Direct A-C edge costs 3, the detour via B costs 2, so every
	// shortest A..C path runs through B.
	g := graph.New()
	g.AddEdge("A", "B", 1)
	g.AddEdge("B", "C", 1)
	g.AddEdge("A", "C", 3)

	bc, err := Betweenness(g)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(bc["B"], 1.0) {
		t.Errorf("bc[B] = %v, want 1.0", bc["B"])
	}
}

func TestBetweennessBounds(t *testing.T) {
	bc, err := Betweenness(triangle())
	if err != nil {
		t.Fatal(err)
	}
	for id, v := range bc {
		if v < 0 || v > 1 {
			t.Errorf("bc[%s] = %v outside [0,1]", id, v)
		}
	}
}

func TestBetweennessSmallGraphs(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", 1)

	bc, err := Betweenness(g)
	if err != nil {
		t.Fatal(err)
	}
	if bc["a"] != 0 || bc["b"] != 0 {
		t.Errorf("two-node graph should have zero betweenness, got %v", bc)
	}
}

func TestBetweennessDisconnected(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 1)
	g.AddEdge("x", "y", 1)

	bc, err := Betweenness(g)
	if err != nil {
		t.Fatal(err)
	}
	if bc["b"] <= 0 {
		t.Errorf("bc[b] = %v, want > 0", bc["b"])
	}
	if bc["x"] != 0 || bc["y"] != 0 {
		t.Errorf("second component should be 0, got x=%v y=%v", bc["x"], bc["y"])
	}
}

func TestNegativeWeightRejected(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", -1)
	g.AddEdge("b", "c", 1)

	if _, err := Betweenness(g); !errors.Is(err, errors.ErrCodeComputation) {
		t.Errorf("Betweenness err = %v, want COMPUTATION_ERROR", err)
	}
	if _, err := Eigenvector(g); !errors.Is(err, errors.ErrCodeComputation) {
		t.Errorf("Eigenvector err = %v, want COMPUTATION_ERROR", err)
	}
}

func TestNaNWeightRejected(t *testing.T) {
	g := graph.New()
	g.AddEdge("a", "b", math.NaN())

	if _, err := Betweenness(g); !errors.Is(err, errors.ErrCodeComputation) {
		t.Errorf("err = %v, want COMPUTATION_ERROR", err)
	}
}
