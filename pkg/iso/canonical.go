package iso

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/isocheck/pkg/graph"
	"github.com/matzehuels/isocheck/pkg/refine"
)

// Canonical is the canonical form of a graph.
type Canonical struct {
	// Certificate is equal for two graphs iff they are isomorphic.
	Certificate Certificate

	// Order lists node IDs by canonical rank. Matching ranks of two
	// isomorphic graphs gives an isomorphism.
	Order []graph.NodeID

	// Visited counts search-tree nodes that were refined.
	Visited int

	// Automorphisms counts automorphisms discovered and used for pruning.
	Automorphisms int
}

// Canonicalize computes the canonical form of g by individualization and
// refinement.
//
// The search tree is explored depth first. Every tree node carries the
// refinement trace of its partition; leaves are ordered by (trace,
// certificate) and the smallest leaf is canonical. A subtree is cut when its
// trace prefix already exceeds the best leaf's, and a child is skipped when a
// discovered automorphism fixing the current path maps an explored sibling
// onto it.
//
// Canonicalize returns ctx.Err() if ctx is done before the search finishes.
// The result is deterministic: the same graph always yields the same
// certificate, and isomorphic graphs yield identical certificates.
func Canonicalize(ctx context.Context, g *graph.Graph) (*Canonical, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := &search{g: g}
	root := refine.Coarsest(g)
	s.visit(root.Partition, trace(root.Rounds), -1)

	for len(s.path) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		top := &s.path[len(s.path)-1]
		w, ok := s.nextChild(top)
		if !ok {
			s.path = s.path[:len(s.path)-1]
			continue
		}
		top.tried = append(top.tried, w)
		child := refine.From(g, top.part.Individualize(w))
		s.visit(child.Partition, trace(child.Rounds), w)
	}

	order := make([]graph.NodeID, len(s.best.order))
	for r, v := range s.best.order {
		order[r] = g.ID(v)
	}
	return &Canonical{
		Certificate:   s.best.cert,
		Order:         order,
		Visited:       s.visited,
		Automorphisms: len(s.autos),
	}, nil
}

// Witness maps nodes of the graph behind a onto nodes of the graph behind b
// by matching canonical ranks. It is only an isomorphism when the
// certificates are equal.
func Witness(a, b *Canonical) map[graph.NodeID]graph.NodeID {
	out := make(map[graph.NodeID]graph.NodeID, len(a.Order))
	for r, id := range a.Order {
		out[id] = b.Order[r]
	}
	return out
}

type frame struct {
	part   refine.Partition
	trace  string
	vertex int   // individualized to reach this node, -1 at the root
	cell   []int // members of the target cell
	next   int
	tried  []int

	orbits     []int // union-find over automorphisms fixing the path
	orbitAutos int   // len(search.autos) when orbits was built
}

type leaf struct {
	traces []string
	cert   Certificate
	order  []int
}

type search struct {
	g       *graph.Graph
	path    []frame
	best    *leaf
	autos   [][]int
	visited int
}

// visit evaluates a freshly refined tree node: it is cut, recorded as a
// leaf, or pushed for expansion.
func (s *search) visit(p refine.Partition, tr string, vertex int) {
	s.visited++
	c := s.comparePrefix(tr)
	if c > 0 {
		return
	}
	if !p.Discrete() {
		target, _ := p.TargetCell()
		s.path = append(s.path, frame{part: p, trace: tr, vertex: vertex, cell: p.Members(target)})
		return
	}

	order := p.Order()
	cert := certify(s.g, order)
	if s.best == nil || c < 0 {
		s.setBest(tr, cert, order)
		return
	}
	switch cert.Compare(s.best.cert) {
	case -1:
		s.setBest(tr, cert, order)
	case 0:
		gamma := make([]int, len(order))
		for r, v := range s.best.order {
			gamma[v] = order[r]
		}
		s.autos = append(s.autos, gamma)
	}
}

func (s *search) setBest(tr string, cert Certificate, order []int) {
	traces := make([]string, 0, len(s.path)+1)
	for _, f := range s.path {
		traces = append(traces, f.trace)
	}
	s.best = &leaf{traces: append(traces, tr), cert: cert, order: order}
}

// comparePrefix compares the trace sequence of the current path extended by
// tr against the best leaf's traces at the same depth.
func (s *search) comparePrefix(tr string) int {
	if s.best == nil {
		return -1
	}
	for i, f := range s.path {
		if i >= len(s.best.traces) {
			return 1
		}
		if c := strings.Compare(f.trace, s.best.traces[i]); c != 0 {
			return c
		}
	}
	d := len(s.path)
	if d >= len(s.best.traces) {
		return 1
	}
	return strings.Compare(tr, s.best.traces[d])
}

// nextChild returns the next member of f's target cell that is not in the
// orbit of an already tried sibling.
func (s *search) nextChild(f *frame) (int, bool) {
	for f.next < len(f.cell) {
		w := f.cell[f.next]
		f.next++
		if len(f.tried) > 0 && len(s.autos) > 0 {
			orbits := s.orbitsFor(f)
			if slices.ContainsFunc(f.tried, func(t int) bool { return find(orbits, t) == find(orbits, w) }) {
				continue
			}
		}
		return w, true
	}
	return 0, false
}

// orbitsFor returns the orbit partition of the group generated by the
// stored automorphisms that fix every vertex individualized on the current
// path. f must be the top of the path.
func (s *search) orbitsFor(f *frame) []int {
	if f.orbits != nil && f.orbitAutos == len(s.autos) {
		return f.orbits
	}
	var fixed []int
	for _, pf := range s.path {
		if pf.vertex >= 0 {
			fixed = append(fixed, pf.vertex)
		}
	}

	n := s.g.NodeCount()
	if f.orbits == nil {
		f.orbits = make([]int, n)
		for i := range f.orbits {
			f.orbits[i] = i
		}
	}
	for _, gamma := range s.autos[f.orbitAutos:] {
		if !slices.ContainsFunc(fixed, func(v int) bool { return gamma[v] != v }) {
			for v, img := range gamma {
				union(f.orbits, v, img)
			}
		}
	}
	f.orbitAutos = len(s.autos)
	return f.orbits
}

func find(parent []int, v int) int {
	for parent[v] != v {
		parent[v] = parent[parent[v]]
		v = parent[v]
	}
	return v
}

func union(parent []int, a, b int) {
	ra, rb := find(parent, a), find(parent, b)
	if ra == rb {
		return
	}
	if rb < ra {
		ra, rb = rb, ra
	}
	parent[rb] = ra
}

// trace encodes a refinement history as an isomorphism-invariant string.
func trace(rounds []refine.Histogram) string {
	var b strings.Builder
	for _, h := range rounds {
		for _, c := range h {
			b.WriteString(c.Signature)
			b.WriteByte('#')
			b.WriteString(strconv.Itoa(c.Size))
			b.WriteByte(';')
		}
		b.WriteByte('|')
	}
	return b.String()
}
