package iso

import (
	"context"
	"time"

	"github.com/matzehuels/isocheck/pkg/graph"
)

// Result is the outcome of one isomorphism check.
type Result struct {
	// Matched is the verdict. For a heuristic engine a true verdict is not a
	// proof; see Heuristic.
	Matched bool `json:"matched"`

	// Elapsed is the wall time spent deciding, pre-filter included.
	Elapsed time.Duration `json:"elapsed"`

	// Witness maps every node of the first graph to its image in the second.
	// Set only for positive verdicts of exact engines.
	Witness map[graph.NodeID]graph.NodeID `json:"witness,omitempty"`

	// Algorithm is the canonical name of the engine that decided.
	Algorithm string `json:"algorithm"`

	// Heuristic is true when Matched came from an incomplete test and may be
	// a false positive.
	Heuristic bool `json:"heuristic"`

	// Prefiltered is true when the verdict came from the node/edge count
	// comparison without running the engine.
	Prefiltered bool `json:"prefiltered"`
}

// Engine decides isomorphism of two graphs.
//
// Implementations are stateless and safe for concurrent use. Decide is only
// called with graphs of equal node and edge counts; it must return
// ctx.Err() unchanged when the context ends the search.
type Engine interface {
	// Name returns the registry key, e.g. "canonical".
	Name() string

	// Exact reports whether positive verdicts are always correct.
	Exact() bool

	// Decide returns the verdict. Only Matched, Witness and Heuristic of the
	// result are read by the caller.
	Decide(ctx context.Context, g1, g2 *graph.Graph) (Result, error)
}
