package iso

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/isocheck/pkg/errors"
	"github.com/matzehuels/isocheck/pkg/graph"
)

// DefaultAlgorithm is used when no algorithm is named.
const DefaultAlgorithm = AlgoCanonical

// Info describes a registered engine.
type Info struct {
	Name        string   `json:"name"`
	Aliases     []string `json:"aliases,omitempty"`
	Exact       bool     `json:"exact"`
	Description string   `json:"description"`
}

type entry struct {
	engine      Engine
	aliases     []string
	description string
}

var registry = []entry{
	{
		engine:      CanonicalEngine{},
		aliases:     []string{"Nauty-Traces"},
		description: "canonical labeling by individualization-refinement",
	},
	{
		engine:      ColorRefinementEngine{},
		aliases:     []string{"Weisfeiler-Lehman"},
		description: "1-dimensional Weisfeiler-Leman; positives are heuristic",
	},
	{
		engine:      BacktrackEngine{},
		aliases:     []string{"Laszlo-Babai (simplified)"},
		description: "refinement-guided backtracking with explicit witness",
	},
}

// Algorithms lists the registered engines in display order.
func Algorithms() []Info {
	out := make([]Info, len(registry))
	for i, e := range registry {
		out[i] = Info{
			Name:        e.engine.Name(),
			Aliases:     slices.Clone(e.aliases),
			Exact:       e.engine.Exact(),
			Description: e.description,
		}
	}
	return out
}

// Lookup resolves an engine by name or alias, ignoring case and surrounding
// space. An empty name selects [DefaultAlgorithm].
func Lookup(name string) (Engine, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		key = DefaultAlgorithm
	}
	for _, e := range registry {
		if strings.EqualFold(key, e.engine.Name()) {
			return e.engine, nil
		}
		for _, alias := range e.aliases {
			if strings.EqualFold(key, alias) {
				return e.engine, nil
			}
		}
	}
	return nil, errors.New(errors.ErrCodeUnknownAlgorithm, "unknown algorithm %q", name)
}

// Check decides whether g1 and g2 are isomorphic using the named algorithm.
//
// Graphs whose node or edge counts differ are rejected before any engine
// runs, with Prefiltered set. Errors carry codes from pkg/errors:
// MALFORMED_GRAPH for a nil graph, UNKNOWN_ALGORITHM for an unregistered
// name, and TIMEOUT or CANCELED when ctx ends the search.
func Check(ctx context.Context, g1, g2 *graph.Graph, algorithm string) (Result, error) {
	if g1 == nil || g2 == nil {
		return Result{}, errors.New(errors.ErrCodeMalformedGraph, "graph must not be nil")
	}
	engine, err := Lookup(algorithm)
	if err != nil {
		return Result{}, err
	}
	return Run(ctx, engine, g1, g2)
}

// Run decides with a specific engine, applying the shared pre-filter and
// timing the call.
func Run(ctx context.Context, engine Engine, g1, g2 *graph.Graph) (Result, error) {
	start := time.Now()
	if g1.NodeCount() != g2.NodeCount() || g1.EdgeCount() != g2.EdgeCount() {
		return Result{
			Algorithm:   engine.Name(),
			Prefiltered: true,
			Elapsed:     time.Since(start),
		}, nil
	}

	res, err := engine.Decide(ctx, g1, g2)
	if err != nil {
		return Result{}, errors.FromContext(err, "%s check", engine.Name())
	}
	res.Algorithm = engine.Name()
	res.Prefiltered = false
	res.Elapsed = time.Since(start)
	return res, nil
}
