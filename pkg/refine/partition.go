package refine

import "slices"

// Color identifies a class of a [Partition].
//
// Colors are graph-local: the same integer in partitions of two different
// graphs means nothing on its own. Compare across graphs with
// [EqualRounds] or [Correspond], never by raw value.
type Color int

// Partition is an ordered partition of the node indices 0..n-1 of one graph.
// Colors are dense (0..Cells()-1) and their order is meaningful: refinement
// and individualization keep classes in a canonical order.
//
// A Partition is immutable; operations return new values.
type Partition struct {
	colors []Color
	cells  int
}

// Unit returns the partition with all n nodes in a single class.
func Unit(n int) Partition {
	cells := 0
	if n > 0 {
		cells = 1
	}
	return Partition{colors: make([]Color, n), cells: cells}
}

// FromColors builds a partition from an explicit coloring. The colors are
// renumbered densely preserving their relative order.
func FromColors(colors []Color) Partition {
	distinct := slices.Clone(colors)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)
	out := make([]Color, len(colors))
	for v, c := range colors {
		idx, _ := slices.BinarySearch(distinct, c)
		out[v] = Color(idx)
	}
	return Partition{colors: out, cells: len(distinct)}
}

// Len returns the number of nodes.
func (p Partition) Len() int { return len(p.colors) }

// Cells returns the number of classes.
func (p Partition) Cells() int { return p.cells }

// Color returns the class of node v.
func (p Partition) Color(v int) Color { return p.colors[v] }

// Colors returns a copy of the coloring indexed by node.
func (p Partition) Colors() []Color { return slices.Clone(p.colors) }

// Discrete reports whether every node is alone in its class.
// A discrete partition is a total order of the nodes: Color(v) is v's rank.
func (p Partition) Discrete() bool { return p.cells == len(p.colors) }

// Sizes returns class sizes indexed by color.
func (p Partition) Sizes() []int {
	sizes := make([]int, p.cells)
	for _, c := range p.colors {
		sizes[c]++
	}
	return sizes
}

// Members returns the nodes of class c in increasing index order.
func (p Partition) Members(c Color) []int {
	var out []int
	for v, cv := range p.colors {
		if cv == c {
			out = append(out, v)
		}
	}
	return out
}

// TargetCell returns the smallest class with more than one member, breaking
// ties by lowest color. It returns false for a discrete partition.
func (p Partition) TargetCell() (Color, bool) {
	best, bestSize := Color(-1), 0
	for c, size := range p.Sizes() {
		if size > 1 && (bestSize == 0 || size < bestSize) {
			best, bestSize = Color(c), size
		}
	}
	return best, bestSize > 0
}

// Individualize splits v out of its class into a fresh singleton ordered
// immediately before the remaining members. Classes after v's shift by one.
// If v is already a singleton the partition is returned unchanged.
func (p Partition) Individualize(v int) Partition {
	cv := p.colors[v]
	if p.Sizes()[cv] == 1 {
		return p
	}
	next := make([]Color, len(p.colors))
	for u, c := range p.colors {
		switch {
		case c > cv, c == cv && u != v:
			next[u] = c + 1
		default:
			next[u] = c
		}
	}
	return Partition{colors: next, cells: p.cells + 1}
}

// Order returns the nodes sorted by color, ties broken by index.
// For a discrete partition this is the node at each rank.
func (p Partition) Order() []int {
	order := make([]int, len(p.colors))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int { return int(p.colors[a] - p.colors[b]) })
	return order
}
