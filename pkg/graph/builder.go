package graph

import (
	"slices"

	isoerrors "github.com/matzehuels/isocheck/pkg/errors"
)

// Builder accumulates nodes and edges and validates them as they arrive.
// A Builder must not be reused after Build.
type Builder struct {
	g     *Graph
	pairs map[[2]int]struct{}
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		g:     &Graph{index: make(map[NodeID]int)},
		pairs: make(map[[2]int]struct{}),
	}
}

// AddNode declares a node. Returns ErrEmptyNodeID or ErrDuplicateNode
// wrapped in a MALFORMED_GRAPH error.
func (b *Builder) AddNode(n Node) error {
	if n.ID == "" {
		return malformed(ErrEmptyNodeID, "add node")
	}
	if err := isoerrors.ValidateNodeID(n.ID); err != nil {
		return err
	}
	if _, exists := b.g.index[n.ID]; exists {
		return malformed(ErrDuplicateNode, "node %s", n.ID)
	}
	b.g.index[n.ID] = len(b.g.ids)
	b.g.ids = append(b.g.ids, n.ID)
	b.g.labels = append(b.g.labels, n.Label)
	b.g.hasLabel = append(b.g.hasLabel, n.HasLabel)
	b.g.adj = append(b.g.adj, nil)
	return nil
}

// AddEdge connects two declared nodes. The pair is unordered: adding (u, v)
// after (v, u) reports ErrDuplicateEdge.
func (b *Builder) AddEdge(u, v NodeID) error {
	i, ok := b.g.index[u]
	if !ok {
		return malformed(ErrUnknownNode, "edge %s-%s: source %s", u, v, u)
	}
	j, ok := b.g.index[v]
	if !ok {
		return malformed(ErrUnknownNode, "edge %s-%s: target %s", u, v, v)
	}
	if i == j {
		return malformed(ErrSelfLoop, "edge %s-%s", u, v)
	}
	key := [2]int{min(i, j), max(i, j)}
	if _, dup := b.pairs[key]; dup {
		return malformed(ErrDuplicateEdge, "edge %s-%s", u, v)
	}
	b.pairs[key] = struct{}{}
	b.g.adj[i] = append(b.g.adj[i], j)
	b.g.adj[j] = append(b.g.adj[j], i)
	b.g.edges++
	return nil
}

// Build finalizes the graph. Neighbor lists are sorted by index so adjacency
// queries can binary search.
func (b *Builder) Build() *Graph {
	for _, nbrs := range b.g.adj {
		slices.Sort(nbrs)
	}
	g := b.g
	b.g, b.pairs = nil, nil
	return g
}
