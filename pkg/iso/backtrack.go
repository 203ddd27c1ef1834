package iso

import (
	"context"

	"github.com/matzehuels/isocheck/pkg/graph"
	"github.com/matzehuels/isocheck/pkg/refine"
)

// Match searches for an isomorphism from g1 onto g2 by backtracking.
//
// Both graphs are refined first; unequal refinement histories end the search
// immediately. Otherwise nodes of g1 are assigned in a fixed
// most-constrained-first order, each only to unused nodes of the
// corresponding class in g2 that agree in label and in adjacency with every
// node already assigned.
//
// ok is false when no isomorphism exists. Match returns ctx.Err() if ctx is
// done before the search finishes.
func Match(ctx context.Context, g1, g2 *graph.Graph) (witness map[graph.NodeID]graph.NodeID, ok bool, err error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if g1.NodeCount() != g2.NodeCount() || g1.EdgeCount() != g2.EdgeCount() {
		return nil, false, nil
	}
	r1, r2 := refine.Coarsest(g1), refine.Coarsest(g2)
	colorMap, same := refine.Correspond(r1, r2)
	if !same {
		return nil, false, nil
	}

	m := &matcher{
		g1:      g1,
		g2:      g2,
		mapping: make([]int, g1.NodeCount()),
		used:    make([]bool, g2.NodeCount()),
	}
	for i := range m.mapping {
		m.mapping[i] = -1
	}
	p2 := r2.Partition
	m.candidates = make([][]int, p2.Cells())
	for c := range p2.Cells() {
		m.candidates[c] = p2.Members(refine.Color(c))
	}

	order := matchOrder(g1, r1.Partition)
	p1 := r1.Partition
	n := len(order)
	cursor := make([]int, n+1)

	for d := 0; d < n; {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		u := order[d]
		if w := m.mapping[u]; w >= 0 {
			m.used[w] = false
			m.mapping[u] = -1
		}

		placed := false
		cands := m.candidates[colorMap[p1.Color(u)]]
		for cursor[d] < len(cands) {
			w := cands[cursor[d]]
			cursor[d]++
			if m.used[w] || !m.consistent(u, w) {
				continue
			}
			m.mapping[u] = w
			m.used[w] = true
			placed = true
			break
		}

		if placed {
			d++
			cursor[d] = 0
			continue
		}
		if d == 0 {
			return nil, false, nil
		}
		d--
	}

	witness = make(map[graph.NodeID]graph.NodeID, n)
	for u, w := range m.mapping {
		witness[g1.ID(u)] = g2.ID(w)
	}
	return witness, true, nil
}

type matcher struct {
	g1, g2     *graph.Graph
	mapping    []int // g1 index -> g2 index, -1 when unassigned
	used       []bool
	candidates [][]int // g2 members per g2 color
}

// consistent reports whether mapping u to w preserves labels, adjacency and
// non-adjacency with respect to the nodes already assigned.
func (m *matcher) consistent(u, w int) bool {
	if !graph.SameLabel(m.g1, u, m.g2, w) {
		return false
	}
	mappedU := 0
	for _, x := range m.g1.NeighborIndices(u) {
		if y := m.mapping[x]; y >= 0 {
			if !m.g2.Adjacent(y, w) {
				return false
			}
			mappedU++
		}
	}
	mappedW := 0
	for _, y := range m.g2.NeighborIndices(w) {
		if m.used[y] {
			mappedW++
		}
	}
	return mappedU == mappedW
}

// matchOrder orders g1's nodes most constrained first: smallest class, then
// most neighbors already ordered, then lowest index.
func matchOrder(g *graph.Graph, p refine.Partition) []int {
	n := g.NodeCount()
	sizes := p.Sizes()
	placed := make([]bool, n)
	links := make([]int, n) // neighbors already placed
	order := make([]int, 0, n)

	for range n {
		best := -1
		for v := range n {
			if placed[v] {
				continue
			}
			if best < 0 || better(sizes[p.Color(v)], links[v], sizes[p.Color(best)], links[best]) {
				best = v
			}
		}
		placed[best] = true
		order = append(order, best)
		for _, u := range g.NeighborIndices(best) {
			links[u]++
		}
	}
	return order
}

func better(size, links, bestSize, bestLinks int) bool {
	if size != bestSize {
		return size < bestSize
	}
	return links > bestLinks
}
