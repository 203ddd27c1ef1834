// Package testgraphs builds small named graphs shared by tests across packages.
package testgraphs

import (
	"strconv"

	"github.com/matzehuels/isocheck/pkg/graph"
)

func ids(n int) []graph.Node {
	nodes := make([]graph.Node, n)
	for i := range nodes {
		nodes[i] = graph.Unlabeled(strconv.Itoa(i))
	}
	return nodes
}

func edge(u, v int) graph.Edge {
	return graph.Edge{Source: strconv.Itoa(u), Target: strconv.Itoa(v)}
}

// FromPairs builds an unlabeled graph on nodes "0".."n-1" from integer pairs.
func FromPairs(n int, pairs ...[2]int) *graph.Graph {
	edges := make([]graph.Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = edge(p[0], p[1])
	}
	return graph.MustNew(ids(n), edges)
}

// Cycle returns C_n with edges i-(i+1) mod n.
func Cycle(n int) *graph.Graph {
	pairs := make([][2]int, n)
	for i := range n {
		pairs[i] = [2]int{i, (i + 1) % n}
	}
	return FromPairs(n, pairs...)
}

// Path returns P_n with edges i-(i+1).
func Path(n int) *graph.Graph {
	pairs := make([][2]int, 0, n)
	for i := 0; i+1 < n; i++ {
		pairs = append(pairs, [2]int{i, i + 1})
	}
	return FromPairs(n, pairs...)
}

// Star returns the star with center 0 and n-1 leaves.
func Star(n int) *graph.Graph {
	pairs := make([][2]int, 0, n)
	for i := 1; i < n; i++ {
		pairs = append(pairs, [2]int{0, i})
	}
	return FromPairs(n, pairs...)
}

// Complete returns K_n.
func Complete(n int) *graph.Graph {
	var pairs [][2]int
	for i := range n {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return FromPairs(n, pairs...)
}

// TwoTriangles returns two disjoint triangles {0,1,2} and {3,4,5}.
func TwoTriangles() *graph.Graph {
	return FromPairs(6, [2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0}, [2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3})
}

// Petersen returns the Petersen graph: outer 5-cycle 0..4, inner pentagram
// 5..9, spokes i-(i+5).
func Petersen() *graph.Graph {
	var pairs [][2]int
	for i := range 5 {
		pairs = append(pairs,
			[2]int{i, (i + 1) % 5},
			[2]int{5 + i, 5 + (i+2)%5},
			[2]int{i, i + 5},
		)
	}
	return FromPairs(10, pairs...)
}

// Prism returns the triangular prism C3 × K2; 3-regular on 6 nodes like
// K_{3,3} but not isomorphic to it.
func Prism() *graph.Graph {
	return FromPairs(6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{2, 0},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{5, 3},
		[2]int{0, 3}, [2]int{1, 4}, [2]int{2, 5},
	)
}

// K33 returns the complete bipartite graph K_{3,3}.
func K33() *graph.Graph {
	var pairs [][2]int
	for i := range 3 {
		for j := 3; j < 6; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return FromPairs(6, pairs...)
}

// Grid returns the w×h grid graph with node r*w+c.
func Grid(w, h int) *graph.Graph {
	var pairs [][2]int
	for r := range h {
		for c := range w {
			v := r*w + c
			if c+1 < w {
				pairs = append(pairs, [2]int{v, v + 1})
			}
			if r+1 < h {
				pairs = append(pairs, [2]int{v, v + w})
			}
		}
	}
	return FromPairs(w*h, pairs...)
}

// LabeledPath returns P_n whose node i carries labels[i].
func LabeledPath(labels ...string) *graph.Graph {
	nodes := make([]graph.Node, len(labels))
	for i, l := range labels {
		nodes[i] = graph.Labeled(strconv.Itoa(i), l)
	}
	var edges []graph.Edge
	for i := 0; i+1 < len(labels); i++ {
		edges = append(edges, edge(i, i+1))
	}
	return graph.MustNew(nodes, edges)
}
