package refine

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/isocheck/pkg/graph"
)

// Class describes one color class in a refinement round.
// Signature is a canonical, graph-independent encoding of what every member
// of the class shares; it is comparable across graphs only when the previous
// rounds of both graphs were equal.
type Class struct {
	Signature string
	Size      int
}

// Histogram lists the classes of one round in color order.
type Histogram []Class

// Equal reports whether two histograms have identical classes in identical order.
func (h Histogram) Equal(o Histogram) bool { return slices.Equal(h, o) }

// Sizes returns the multiset of class sizes in ascending order.
func (h Histogram) Sizes() []int {
	out := make([]int, len(h))
	for i, c := range h {
		out[i] = c.Size
	}
	slices.Sort(out)
	return out
}

// Result is the outcome of refining one graph.
type Result struct {
	// Partition is the final, stable coloring.
	Partition Partition
	// Rounds holds one histogram per round: the seed first, the stable
	// round last.
	Rounds []Histogram
}

// Final returns the histogram of the stable partition.
func (r Result) Final() Histogram {
	if len(r.Rounds) == 0 {
		return nil
	}
	return r.Rounds[len(r.Rounds)-1]
}

// Colors returns the final color of every node keyed by ID.
func (r Result) Colors(g *graph.Graph) map[graph.NodeID]Color {
	out := make(map[graph.NodeID]Color, r.Partition.Len())
	for v := range r.Partition.Len() {
		out[g.ID(v)] = r.Partition.Color(v)
	}
	return out
}

// Coarsest computes the coarsest equitable partition of g seeded by
// (label, degree): absent labels sort first, then labels lexicographically,
// then degree ascending.
func Coarsest(g *graph.Graph) Result {
	n := g.NodeCount()
	keys := make([]seedKey, n)
	for v := range n {
		label, ok := g.LabelAt(v)
		keys[v] = seedKey{hasLabel: ok, label: label, degree: g.DegreeAt(v)}
	}
	colors, hist := classify(n, func(a, b int) int { return keys[a].compare(keys[b]) }, func(v int) string {
		return keys[v].String()
	})
	return run(g, colors, len(hist), []Histogram{hist})
}

// From refines an arbitrary seed partition of g, typically one produced by
// [Partition.Individualize]. The seed round's signatures are the seed colors.
func From(g *graph.Graph, seed Partition) Result {
	sizes := seed.Sizes()
	hist := make(Histogram, len(sizes))
	for c, size := range sizes {
		hist[c] = Class{Signature: "c" + strconv.Itoa(c), Size: size}
	}
	return run(g, seed.Colors(), seed.Cells(), []Histogram{hist})
}

// EqualRounds reports whether two refinements went through identical
// histograms. Unequal rounds prove the graphs are not isomorphic.
func EqualRounds(a, b Result) bool {
	return slices.EqualFunc(a.Rounds, b.Rounds, Histogram.Equal)
}

// Correspond returns, for each color of a, the color of b's class that any
// isomorphism must map it to. It succeeds only when the refinement histories
// are equal; otherwise no isomorphism exists and ok is false.
func Correspond(a, b Result) (mapping []Color, ok bool) {
	if !EqualRounds(a, b) {
		return nil, false
	}
	// Both histograms list classes in color order with equal signatures, so
	// class positions line up.
	final := a.Final()
	mapping = make([]Color, len(final))
	for i := range final {
		mapping[i] = Color(i)
	}
	return mapping, true
}

// run iterates signature refinement until the class count stops growing or
// n rounds have run.
func run(g *graph.Graph, colors []Color, cells int, rounds []Histogram) Result {
	n := len(colors)
	sigs := make([]signature, n)
	for range n {
		for v := range n {
			nc := sigs[v].nbrs[:0]
			for _, u := range g.NeighborIndices(v) {
				nc = append(nc, colors[u])
			}
			slices.Sort(nc)
			sigs[v] = signature{self: colors[v], nbrs: nc}
		}
		next, hist := classify(n, func(a, b int) int { return sigs[a].compare(sigs[b]) }, func(v int) string {
			return sigs[v].String()
		})
		rounds = append(rounds, hist)
		colors = next
		if len(hist) == cells {
			break
		}
		cells = len(hist)
	}
	return Result{Partition: Partition{colors: colors, cells: cells}, Rounds: rounds}
}

// classify sorts nodes by cmpFn and assigns dense colors in sorted order.
func classify(n int, cmpFn func(a, b int) int, sig func(v int) string) ([]Color, Histogram) {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, cmpFn)

	colors := make([]Color, n)
	var hist Histogram
	c := Color(-1)
	for k, v := range order {
		if k == 0 || cmpFn(order[k-1], v) != 0 {
			c++
			hist = append(hist, Class{Signature: sig(v)})
		}
		colors[v] = c
		hist[c].Size++
	}
	return colors, hist
}

type seedKey struct {
	hasLabel bool
	label    string
	degree   int
}

func (k seedKey) compare(o seedKey) int {
	if k.hasLabel != o.hasLabel {
		if !k.hasLabel {
			return -1
		}
		return 1
	}
	if c := strings.Compare(k.label, o.label); c != 0 {
		return c
	}
	return cmp.Compare(k.degree, o.degree)
}

func (k seedKey) String() string {
	deg := strconv.Itoa(k.degree)
	if !k.hasLabel {
		return "-/" + deg
	}
	return strconv.Quote(k.label) + "/" + deg
}

type signature struct {
	self Color
	nbrs []Color
}

func (s signature) compare(o signature) int {
	if c := cmp.Compare(s.self, o.self); c != 0 {
		return c
	}
	return slices.Compare(s.nbrs, o.nbrs)
}

func (s signature) String() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(int(s.self)))
	b.WriteByte(':')
	for i, c := range s.nbrs {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(c)))
	}
	return b.String()
}
