// Package layout assigns 2D coordinates to graph nodes.
//
// Four algorithms are supported, selected by [Algorithm]:
//
//   - spring: seeded Fruchterman-Reingold force simulation
//   - circular: nodes on a ring in sorted order
//   - kamada_kawai: stress majorization over weighted shortest-path distances
//   - random: seeded uniform placement
//
// All algorithms return positions normalized to the unit square, so the
// renderer only scales by the frame size. The string-to-Algorithm
// conversion is fallible: an unrecognized name is an UNKNOWN_LAYOUT error,
// never a silent no-op.
package layout

import (
	"math"
	"math/rand"

	"github.com/matzehuels/netplot/pkg/errors"
	"github.com/matzehuels/netplot/pkg/graph"
)

// Algorithm is an enumerated layout selector.
type Algorithm int

// Supported layout algorithms.
const (
	Spring Algorithm = iota
	Circular
	KamadaKawai
	Random
)

// DefaultSeed is the default random seed for reproducibility.
const DefaultSeed = int64(42)

// springIterations bounds the force simulation.
const springIterations = 50

// stressIterations bounds the Kamada-Kawai majorization loop.
const stressIterations = 100

var names = map[Algorithm]string{
	Spring:      "spring",
	Circular:    "circular",
	KamadaKawai: "kamada_kawai",
	Random:      "random",
}

// String returns the selector name used on the CLI and in file names.
func (a Algorithm) String() string {
	if s, ok := names[a]; ok {
		return s
	}
	return "unknown"
}

// Parse converts a selector string to an Algorithm.
// Returns an UNKNOWN_LAYOUT error for anything outside the accepted set.
func Parse(s string) (Algorithm, error) {
	for a, name := range names {
		if s == name {
			return a, nil
		}
	}
	return 0, errors.New(errors.ErrCodeUnknownLayout,
		"unknown layout %q (must be one of: spring, circular, kamada_kawai, random)", s)
}

// Point is a node position in the unit square.
type Point struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Compute positions every node of g under the selected algorithm.
// The seed drives the spring and random layouts; circular and
// kamada_kawai are deterministic regardless of seed.
func Compute(g *graph.Graph, algo Algorithm, seed int64) (map[string]Point, error) {
	if g.NodeCount() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "cannot lay out an empty graph")
	}

	switch algo {
	case Spring:
		return spring(g, seed), nil
	case Circular:
		return circular(g), nil
	case KamadaKawai:
		return kamadaKawai(g), nil
	case Random:
		return randomLayout(g, seed), nil
	default:
		return nil, errors.New(errors.ErrCodeUnknownLayout, "unknown layout algorithm %d", algo)
	}
}

// circular places nodes on a ring in sorted order, centered in the unit
// square.
func circular(g *graph.Graph) map[string]Point {
	nodes := g.Nodes()
	pos := make(map[string]Point, len(nodes))
	if len(nodes) == 1 {
		pos[nodes[0]] = Point{X: 0.5, Y: 0.5}
		return pos
	}
	for i, id := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(len(nodes))
		pos[id] = Point{
			X: 0.5 + 0.5*math.Cos(angle),
			Y: 0.5 + 0.5*math.Sin(angle),
		}
	}
	return pos
}

// randomLayout places nodes uniformly in the unit square.
func randomLayout(g *graph.Graph, seed int64) map[string]Point {
	rng := rand.New(rand.NewSource(seed))
	pos := make(map[string]Point, g.NodeCount())
	for _, id := range g.Nodes() {
		pos[id] = Point{X: rng.Float64(), Y: rng.Float64()}
	}
	return pos
}

// spring runs a Fruchterman-Reingold force simulation with linear cooling,
// seeded for reproducible output. Edge weights strengthen attraction.
func spring(g *graph.Graph, seed int64) map[string]Point {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 1 {
		return map[string]Point{nodes[0]: {X: 0.5, Y: 0.5}}
	}

	rng := rand.New(rand.NewSource(seed))
	px := make([]float64, n)
	py := make([]float64, n)
	index := make(map[string]int, n)
	for i, id := range nodes {
		index[id] = i
		px[i] = rng.Float64()
		py[i] = rng.Float64()
	}

	k := math.Sqrt(1.0 / float64(n)) // ideal pairwise distance for unit area
	temp := 0.1
	cool := temp / float64(springIterations+1)

	dx := make([]float64, n)
	dy := make([]float64, n)

	for iter := 0; iter < springIterations; iter++ {
		for i := range dx {
			dx[i], dy[i] = 0, 0
		}

		// Repulsion between all pairs.
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				ddx := px[i] - px[j]
				ddy := py[i] - py[j]
				dist := math.Hypot(ddx, ddy)
				if dist < 1e-9 {
					dist = 1e-9
					ddx = (rng.Float64() - 0.5) * 1e-4
					ddy = (rng.Float64() - 0.5) * 1e-4
				}
				force := k * k / dist
				dx[i] += ddx / dist * force
				dy[i] += ddy / dist * force
				dx[j] -= ddx / dist * force
				dy[j] -= ddy / dist * force
			}
		}

		// Attraction along edges, weight-scaled.
		for _, e := range g.Edges() {
			i, j := index[e.Source], index[e.Target]
			if i == j {
				continue
			}
			ddx := px[i] - px[j]
			ddy := py[i] - py[j]
			dist := math.Hypot(ddx, ddy)
			if dist < 1e-9 {
				continue
			}
			force := dist * dist / k * e.Weight
			dx[i] -= ddx / dist * force
			dy[i] -= ddy / dist * force
			dx[j] += ddx / dist * force
			dy[j] += ddy / dist * force
		}

		// Displace, capped by temperature.
		for i := 0; i < n; i++ {
			disp := math.Hypot(dx[i], dy[i])
			if disp < 1e-9 {
				continue
			}
			limited := math.Min(disp, temp)
			px[i] += dx[i] / disp * limited
			py[i] += dy[i] / disp * limited
		}
		temp -= cool
	}

	return normalize(nodes, px, py)
}

// kamadaKawai minimizes layout stress against weighted shortest-path
// distances using majorization, starting from the circular layout so the
// result is deterministic. Distances between disconnected components are
// substituted with twice the largest finite distance.
func kamadaKawai(g *graph.Graph) map[string]Point {
	nodes := g.Nodes()
	n := len(nodes)
	if n == 1 {
		return map[string]Point{nodes[0]: {X: 0.5, Y: 0.5}}
	}

	// All-pairs shortest-path distances.
	d := make([][]float64, n)
	maxFinite := 0.0
	for i, id := range nodes {
		d[i] = make([]float64, n)
		from := g.DijkstraFrom(id)
		for j, other := range nodes {
			if dist, ok := from[other]; ok {
				d[i][j] = dist
				if dist > maxFinite {
					maxFinite = dist
				}
			} else {
				d[i][j] = math.Inf(1)
			}
		}
	}
	if maxFinite == 0 {
		maxFinite = 1
	}
	for i := range d {
		for j := range d[i] {
			if math.IsInf(d[i][j], 1) {
				d[i][j] = 2 * maxFinite
			}
		}
	}

	start := circular(g)
	px := make([]float64, n)
	py := make([]float64, n)
	for i, id := range nodes {
		px[i] = start[id].X
		py[i] = start[id].Y
	}

	for iter := 0; iter < stressIterations; iter++ {
		for i := 0; i < n; i++ {
			var sumW, sumX, sumY float64
			for j := 0; j < n; j++ {
				if i == j || d[i][j] == 0 {
					continue
				}
				w := 1 / (d[i][j] * d[i][j])
				ddx := px[i] - px[j]
				ddy := py[i] - py[j]
				dist := math.Hypot(ddx, ddy)
				if dist < 1e-9 {
					dist = 1e-9
				}
				sumW += w
				sumX += w * (px[j] + d[i][j]*ddx/dist)
				sumY += w * (py[j] + d[i][j]*ddy/dist)
			}
			if sumW > 0 {
				px[i] = sumX / sumW
				py[i] = sumY / sumW
			}
		}
	}

	return normalize(nodes, px, py)
}

// normalize rescales raw coordinates into the unit square, preserving
// aspect ratio per axis. A degenerate axis collapses to the center line.
func normalize(nodes []string, px, py []float64) map[string]Point {
	minX, maxX := px[0], px[0]
	minY, maxY := py[0], py[0]
	for i := 1; i < len(nodes); i++ {
		minX = math.Min(minX, px[i])
		maxX = math.Max(maxX, px[i])
		minY = math.Min(minY, py[i])
		maxY = math.Max(maxY, py[i])
	}

	pos := make(map[string]Point, len(nodes))
	for i, id := range nodes {
		p := Point{X: 0.5, Y: 0.5}
		if maxX > minX {
			p.X = (px[i] - minX) / (maxX - minX)
		}
		if maxY > minY {
			p.Y = (py[i] - minY) / (maxY - minY)
		}
		pos[id] = p
	}
	return pos
}
