// Package refine computes coarsest equitable partitions by color refinement
// (1-dimensional Weisfeiler-Leman).
//
// Colors are numbered canonically from sorted signatures, so the sequence of
// per-round histograms is an isomorphism invariant. [Partition.Individualize]
// and [From] support individualization-refinement search.
package refine
