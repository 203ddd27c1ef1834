// Package graph provides the immutable undirected graph value used by the
// isomorphism engines.
//
// # Model
//
// A [Graph] is a simple undirected graph: no self-loops, no parallel edges.
// Every node has an opaque string identifier and an optional label. An absent
// label is distinct from an empty one, and two nodes can only correspond under
// an isomorphism when their labels are equal.
//
// Graphs are built once and never mutated:
//
//	g, err := graph.New(
//	    []graph.Node{graph.Unlabeled("a"), graph.Unlabeled("b"), graph.Labeled("c", "gate")},
//	    []graph.Edge{{Source: "a", Target: "b"}, {Source: "b", Target: "c"}},
//	)
//
// Construction fails with a MALFORMED_GRAPH coded error (see pkg/errors) that
// wraps one of [ErrEmptyNodeID], [ErrDuplicateNode], [ErrUnknownNode],
// [ErrSelfLoop] or [ErrDuplicateEdge]. Validation happens at construction
// only; algorithms never see an invalid graph.
//
// # Ordering
//
// [Graph.Nodes] returns IDs in order of first appearance in the input.
// Algorithms rely on this order as a deterministic tie-break, so the same
// input always produces the same internal indices.
//
// # Index Access
//
// The algorithms work on dense indices 0..n-1 rather than IDs. [Graph.ID],
// [Graph.Index], [Graph.NeighborIndices], [Graph.Adjacent] and
// [Graph.LabelAt] expose that view. Slices returned by index accessors are
// shared with the graph and must be treated as read-only.
//
// # Relabeling
//
// [Graph.Permute] and [Graph.Shuffled] produce renamed copies and
// [IsIsomorphism] verifies a candidate mapping; both are used to check
// witnesses returned by the engines.
//
// # Concurrency
//
// A built Graph is safe for concurrent use by any number of readers.
// A [Builder] is not safe for concurrent use.
package graph
