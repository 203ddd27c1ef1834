// Package pipeline runs isomorphism checks end to end for the CLI and the API.
//
// A check has two stages:
//
//  1. Load: read both graphs from JSON files (or take them prebuilt)
//  2. Check: decide isomorphism under a timeout, reusing cached canonical
//     forms and verdicts where possible
//
// Centralizing this keeps caching, timeouts, logging and hooks identical for
// every entry point.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Graph1Path: "a.json",
//	    Graph2Path: "b.json",
//	    Algorithm:  "canonical",
//	})
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Matched, result.Elapsed)
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/isocheck/pkg/errors"
	"github.com/matzehuels/isocheck/pkg/graph"
	"github.com/matzehuels/isocheck/pkg/iso"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultTimeout bounds a single check. Exact engines are exponential in
	// the worst case.
	DefaultTimeout = 60 * time.Second

	// TTLCertificate is how long canonical forms stay cached. Certificates
	// of a given graph never change, so this only bounds cache growth.
	TTLCertificate = 30 * 24 * time.Hour

	// TTLVerdict is how long verdicts of non-canonical engines stay cached.
	TTLVerdict = 7 * 24 * time.Hour
)

// =============================================================================
// Options - Check Configuration
// =============================================================================

// Options configures one check. Each graph is given either as a path or as a
// prebuilt value; a prebuilt value wins.
type Options struct {
	Graph1Path string        `json:"graph1_path,omitempty"`
	Graph2Path string        `json:"graph2_path,omitempty"`
	Algorithm  string        `json:"algorithm,omitempty"`
	Timeout    time.Duration `json:"timeout,omitempty"`
	Refresh    bool          `json:"refresh,omitempty"` // skip cache reads, still write

	// Runtime options (not serialized)
	Graph1 *graph.Graph `json:"-"`
	Graph2 *graph.Graph `json:"-"`
	Logger *log.Logger  `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options, resolves the algorithm name to
// its canonical form and applies defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := validateSource("graph1", o.Graph1, o.Graph1Path); err != nil {
		return err
	}
	if err := validateSource("graph2", o.Graph2, o.Graph2Path); err != nil {
		return err
	}

	engine, err := iso.Lookup(o.Algorithm)
	if err != nil {
		return err
	}
	o.Algorithm = engine.Name()

	if o.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "timeout must not be negative, got %s", o.Timeout)
	}
	if o.Timeout == 0 {
		o.Timeout = DefaultTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func validateSource(name string, g *graph.Graph, path string) error {
	if g != nil {
		return nil
	}
	if path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "%s is required", name)
	}
	return errors.ValidateGraphPath(path)
}

// =============================================================================
// Results
// =============================================================================

// Result is the outcome of Execute.
type Result struct {
	// ID identifies the check in logs and API responses.
	ID string

	Algorithm   string
	Matched     bool
	Heuristic   bool
	Prefiltered bool
	Witness     map[graph.NodeID]graph.NodeID

	// Elapsed is the decision time reported by the engine (cache lookups
	// included, loading excluded).
	Elapsed time.Duration

	Graph1 *graph.Graph
	Graph2 *graph.Graph

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains sizes and stage timings.
type Stats struct {
	Nodes1    int
	Edges1    int
	Nodes2    int
	Edges2    int
	LoadTime  time.Duration
	CheckTime time.Duration
}

// CacheInfo records which lookups hit the cache.
type CacheInfo struct {
	Graph1Hit  bool // canonical form of graph 1
	Graph2Hit  bool // canonical form of graph 2
	VerdictHit bool // whole verdict (non-canonical engines)
}
