package graph

import (
	"errors"
	"slices"

	isoerrors "github.com/matzehuels/isocheck/pkg/errors"
)

var (
	// ErrEmptyNodeID is returned when a node is declared with an empty identifier.
	ErrEmptyNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNode is returned when two nodes share the same identifier.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an edge references an undeclared node.
	ErrUnknownNode = errors.New("edge references unknown node")

	// ErrSelfLoop is returned for an edge whose endpoints are the same node.
	ErrSelfLoop = errors.New("self-loops are not allowed")

	// ErrDuplicateEdge is returned when the same unordered pair appears twice.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// NodeID identifies a node. IDs are opaque and only compared for equality.
type NodeID = string

// Node declares a vertex with an optional label.
// HasLabel distinguishes an absent label from an empty one.
type Node struct {
	ID       NodeID
	Label    string
	HasLabel bool
}

// Labeled returns a node declaration carrying label.
func Labeled(id NodeID, label string) Node {
	return Node{ID: id, Label: label, HasLabel: true}
}

// Unlabeled returns a node declaration without a label.
func Unlabeled(id NodeID) Node {
	return Node{ID: id}
}

// Edge is an unordered pair of node IDs.
type Edge struct {
	Source NodeID
	Target NodeID
}

// Graph is an immutable simple undirected graph with optional node labels.
//
// Nodes are stored densely by index in order of first appearance. Index-based
// accessors exist for the isomorphism algorithms; they return internal slices
// that callers must not modify.
//
// The zero value is an empty graph. A Graph is safe for concurrent readers.
type Graph struct {
	ids      []NodeID
	index    map[NodeID]int
	labels   []string
	hasLabel []bool
	adj      [][]int // sorted neighbor indices
	edges    int
}

// New constructs a graph from node and edge lists.
//
// It fails with a MALFORMED_GRAPH error wrapping one of the package
// sentinels when an ID is empty or repeated, an edge references an unknown
// node, an edge is a self-loop, or an edge is listed twice (in either
// orientation).
func New(nodes []Node, edges []Edge) (*Graph, error) {
	b := NewBuilder()
	for _, n := range nodes {
		if err := b.AddNode(n); err != nil {
			return nil, err
		}
	}
	for _, e := range edges {
		if err := b.AddEdge(e.Source, e.Target); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(nodes []Node, edges []Edge) *Graph {
	g, err := New(nodes, edges)
	if err != nil {
		panic(err)
	}
	return g
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.ids) }

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int { return g.edges }

// Nodes returns node IDs in order of first appearance in the input.
func (g *Graph) Nodes() []NodeID { return slices.Clone(g.ids) }

// Has reports whether id is a node of g.
func (g *Graph) Has(id NodeID) bool {
	_, ok := g.index[id]
	return ok
}

// Degree returns the degree of id, or -1 if id is not in the graph.
func (g *Graph) Degree(id NodeID) int {
	i, ok := g.index[id]
	if !ok {
		return -1
	}
	return len(g.adj[i])
}

// Neighbors returns the neighbors of id in input order, or nil if id is unknown.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	i, ok := g.index[id]
	if !ok {
		return nil
	}
	out := make([]NodeID, len(g.adj[i]))
	for k, j := range g.adj[i] {
		out[k] = g.ids[j]
	}
	return out
}

// Label returns the label of id and whether one is set.
func (g *Graph) Label(id NodeID) (string, bool) {
	i, ok := g.index[id]
	if !ok {
		return "", false
	}
	return g.labels[i], g.hasLabel[i]
}

// HasEdge reports whether u and v are adjacent.
func (g *Graph) HasEdge(u, v NodeID) bool {
	i, ok := g.index[u]
	if !ok {
		return false
	}
	j, ok := g.index[v]
	if !ok {
		return false
	}
	return g.Adjacent(i, j)
}

// Edges returns every edge once, ordered by the index of the source and then
// the target, with Source always the earlier-declared endpoint.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for i, nbrs := range g.adj {
		for _, j := range nbrs {
			if i < j {
				out = append(out, Edge{Source: g.ids[i], Target: g.ids[j]})
			}
		}
	}
	return out
}

// Declarations returns the node declarations in input order.
func (g *Graph) Declarations() []Node {
	out := make([]Node, len(g.ids))
	for i, id := range g.ids {
		out[i] = Node{ID: id, Label: g.labels[i], HasLabel: g.hasLabel[i]}
	}
	return out
}

// ID returns the identifier of the node at index i.
func (g *Graph) ID(i int) NodeID { return g.ids[i] }

// Index returns the dense index of id.
func (g *Graph) Index(id NodeID) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NeighborIndices returns the sorted neighbor indices of node i.
// The slice is shared with the graph and must not be modified.
func (g *Graph) NeighborIndices(i int) []int { return g.adj[i] }

// DegreeAt returns the degree of the node at index i.
func (g *Graph) DegreeAt(i int) int { return len(g.adj[i]) }

// LabelAt returns the label of the node at index i and whether one is set.
func (g *Graph) LabelAt(i int) (string, bool) { return g.labels[i], g.hasLabel[i] }

// Adjacent reports whether the nodes at indices i and j share an edge.
func (g *Graph) Adjacent(i, j int) bool {
	a := g.adj[i]
	if len(g.adj[j]) < len(a) {
		a, i, j = g.adj[j], j, i
	}
	_, found := slices.BinarySearch(a, j)
	return found
}

// SameLabel reports whether node i of g and node j of h carry equal labels.
// Two absent labels are equal; an absent label never equals a present one.
func SameLabel(g *Graph, i int, h *Graph, j int) bool {
	return g.hasLabel[i] == h.hasLabel[j] && g.labels[i] == h.labels[j]
}

func malformed(cause error, format string, args ...any) error {
	return isoerrors.Wrap(isoerrors.ErrCodeMalformedGraph, cause, format, args...)
}
