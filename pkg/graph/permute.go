package graph

import (
	"fmt"
	"math/rand/v2"
)

// Permute returns a copy of g with every node ID replaced through mapping.
// Node declarations keep their labels; the new graph declares nodes in the
// order of their images sorted by the original declaration order, so the
// result differs from g only by renaming.
//
// mapping must be a bijection from g's IDs onto a set of distinct IDs.
func (g *Graph) Permute(mapping map[NodeID]NodeID) (*Graph, error) {
	if len(mapping) != len(g.ids) {
		return nil, malformed(nil, "permutation covers %d of %d nodes", len(mapping), len(g.ids))
	}
	b := NewBuilder()
	for i, id := range g.ids {
		img, ok := mapping[id]
		if !ok {
			return nil, malformed(ErrUnknownNode, "permutation missing node %s", id)
		}
		if err := b.AddNode(Node{ID: img, Label: g.labels[i], HasLabel: g.hasLabel[i]}); err != nil {
			return nil, err
		}
	}
	for _, e := range g.Edges() {
		if err := b.AddEdge(mapping[e.Source], mapping[e.Target]); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// Shuffled returns an isomorphic copy of g whose nodes are renamed and
// declared in a random order, together with the renaming that produced it.
// New IDs have the form "<prefix><n>".
func (g *Graph) Shuffled(rng *rand.Rand, prefix string) (*Graph, map[NodeID]NodeID) {
	n := len(g.ids)
	perm := rng.Perm(n)
	mapping := make(map[NodeID]NodeID, n)
	for i, id := range g.ids {
		mapping[id] = fmt.Sprintf("%s%d", prefix, perm[i])
	}

	// Declare nodes in the order of their new names so input order differs too.
	order := make([]int, n)
	for i := range g.ids {
		order[perm[i]] = i
	}
	b := NewBuilder()
	for _, i := range order {
		_ = b.AddNode(Node{ID: mapping[g.ids[i]], Label: g.labels[i], HasLabel: g.hasLabel[i]})
	}
	edges := g.Edges()
	rng.Shuffle(len(edges), func(a, c int) { edges[a], edges[c] = edges[c], edges[a] })
	for _, e := range edges {
		if rng.IntN(2) == 0 {
			e.Source, e.Target = e.Target, e.Source
		}
		_ = b.AddEdge(mapping[e.Source], mapping[e.Target])
	}
	return b.Build(), mapping
}

// IsIsomorphism reports whether mapping is a label-preserving bijection from
// g's nodes onto h's nodes that maps edges to edges and non-edges to non-edges.
func IsIsomorphism(g, h *Graph, mapping map[NodeID]NodeID) bool {
	if g.NodeCount() != h.NodeCount() || g.EdgeCount() != h.EdgeCount() || len(mapping) != g.NodeCount() {
		return false
	}
	seen := make(map[NodeID]struct{}, len(mapping))
	for i, id := range g.ids {
		img, ok := mapping[id]
		if !ok {
			return false
		}
		j, ok := h.index[img]
		if !ok {
			return false
		}
		if _, dup := seen[img]; dup {
			return false
		}
		seen[img] = struct{}{}
		if !SameLabel(g, i, h, j) {
			return false
		}
	}
	// Edge counts match and the map is a bijection, so edges → edges suffices.
	for _, e := range g.Edges() {
		if !h.HasEdge(mapping[e.Source], mapping[e.Target]) {
			return false
		}
	}
	return true
}
