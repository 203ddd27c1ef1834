package iso

import (
	"context"

	"github.com/matzehuels/isocheck/pkg/graph"
	"github.com/matzehuels/isocheck/pkg/refine"
)

// Engine names.
const (
	AlgoCanonical       = "canonical"
	AlgoColorRefinement = "color-refinement"
	AlgoBacktracking    = "backtracking"
)

// CanonicalEngine compares canonical certificates. Exact.
type CanonicalEngine struct{}

func (CanonicalEngine) Name() string { return AlgoCanonical }
func (CanonicalEngine) Exact() bool  { return true }

func (CanonicalEngine) Decide(ctx context.Context, g1, g2 *graph.Graph) (Result, error) {
	c1, err := Canonicalize(ctx, g1)
	if err != nil {
		return Result{}, err
	}
	c2, err := Canonicalize(ctx, g2)
	if err != nil {
		return Result{}, err
	}
	return Compare(c1, c2), nil
}

// Compare decides isomorphism from two precomputed canonical forms, for
// callers that cache certificates.
func Compare(c1, c2 *Canonical) Result {
	if !c1.Certificate.Equal(c2.Certificate) {
		return Result{}
	}
	return Result{Matched: true, Witness: Witness(c1, c2)}
}

// ColorRefinementEngine is the 1-dimensional Weisfeiler-Leman test.
//
// Different refinement histories prove non-isomorphism. Equal histories are
// reported as a heuristic match: regular graphs of equal degree and size,
// such as a 6-cycle and two disjoint triangles, are indistinguishable.
type ColorRefinementEngine struct{}

func (ColorRefinementEngine) Name() string { return AlgoColorRefinement }
func (ColorRefinementEngine) Exact() bool  { return false }

func (ColorRefinementEngine) Decide(ctx context.Context, g1, g2 *graph.Graph) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if !refine.EqualRounds(refine.Coarsest(g1), refine.Coarsest(g2)) {
		return Result{}, nil
	}
	return Result{Matched: true, Heuristic: true}, nil
}

// BacktrackEngine searches for an explicit bijection. Exact.
type BacktrackEngine struct{}

func (BacktrackEngine) Name() string { return AlgoBacktracking }
func (BacktrackEngine) Exact() bool  { return true }

func (BacktrackEngine) Decide(ctx context.Context, g1, g2 *graph.Graph) (Result, error) {
	witness, ok, err := Match(ctx, g1, g2)
	if err != nil || !ok {
		return Result{}, err
	}
	return Result{Matched: true, Witness: witness}, nil
}
