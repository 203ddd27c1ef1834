package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/isocheck/pkg/cache"
	"github.com/matzehuels/isocheck/pkg/graph"
	isoio "github.com/matzehuels/isocheck/pkg/io"
	"github.com/matzehuels/isocheck/pkg/iso"
	"github.com/matzehuels/isocheck/pkg/observability"
)

// Runner executes checks with caching. The CLI and the API share it.
//
// A Runner holds no per-check state; one instance may serve concurrent
// checks.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL overrides TTLCertificate and TTLVerdict when positive.
	TTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer uses
// DefaultKeyer and a nil logger uses log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute loads both graphs and decides isomorphism within opts.Timeout.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	logger := opts.Logger.With("check_id", id)

	loadStart := time.Now()
	g1, err := load(opts.Graph1, opts.Graph1Path)
	if err != nil {
		return nil, err
	}
	g2, err := load(opts.Graph2, opts.Graph2Path)
	if err != nil {
		return nil, err
	}
	result := &Result{
		ID:        id,
		Algorithm: opts.Algorithm,
		Graph1:    g1,
		Graph2:    g2,
		Stats: Stats{
			Nodes1:   g1.NodeCount(),
			Edges1:   g1.EdgeCount(),
			Nodes2:   g2.NodeCount(),
			Edges2:   g2.EdgeCount(),
			LoadTime: time.Since(loadStart),
		},
	}
	logger.Debug("loaded graphs",
		"nodes1", result.Stats.Nodes1,
		"edges1", result.Stats.Edges1,
		"nodes2", result.Stats.Nodes2,
		"edges2", result.Stats.Edges2,
		"duration", result.Stats.LoadTime)

	checkCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	hooks := observability.Check()
	hooks.OnCheckStart(ctx, id, opts.Algorithm, g1.NodeCount())
	checkStart := time.Now()
	res, info, err := r.CheckWithCacheInfo(checkCtx, g1, g2, opts)
	result.Stats.CheckTime = time.Since(checkStart)
	hooks.OnCheckComplete(ctx, id, opts.Algorithm, res.Matched, result.Stats.CheckTime, err)
	if err != nil {
		logger.Warn("check failed", "algorithm", opts.Algorithm, "duration", result.Stats.CheckTime, "err", err)
		return nil, err
	}

	result.Matched = res.Matched
	result.Heuristic = res.Heuristic
	result.Prefiltered = res.Prefiltered
	result.Witness = res.Witness
	result.Elapsed = res.Elapsed
	result.CacheInfo = info

	logger.Info("check complete",
		"algorithm", res.Algorithm,
		"matched", res.Matched,
		"heuristic", res.Heuristic,
		"prefiltered", res.Prefiltered,
		"duration", res.Elapsed)
	return result, nil
}

// CheckWithCacheInfo decides isomorphism of two built graphs. The canonical
// engine reuses cached canonical forms per graph; other engines reuse cached
// verdicts per graph pair.
func (r *Runner) CheckWithCacheInfo(ctx context.Context, g1, g2 *graph.Graph, opts Options) (iso.Result, CacheInfo, error) {
	var info CacheInfo
	engine, err := iso.Lookup(opts.Algorithm)
	if err != nil {
		return iso.Result{}, info, err
	}

	if engine.Name() == iso.AlgoCanonical {
		res, err := iso.Run(ctx, &canonicalEngine{r: r, refresh: opts.Refresh, info: &info}, g1, g2)
		return res, info, err
	}

	start := time.Now()
	h1, h2 := graphHash(g1), graphHash(g2)
	key := r.Keyer.VerdictKey(cache.VerdictKeyOpts{Algorithm: engine.Name(), Graph1: h1, Graph2: h2})
	if !opts.Refresh {
		if v, ok := r.loadVerdict(ctx, key); ok {
			info.VerdictHit = true
			return v.result(engine.Name(), h1, time.Since(start)), info, nil
		}
	}

	res, err := iso.Run(ctx, engine, g1, g2)
	if err != nil || res.Prefiltered {
		return res, info, err
	}
	r.storeVerdict(ctx, key, verdict{Matched: res.Matched, Heuristic: res.Heuristic, Witness: res.Witness, Source: h1})
	return res, info, nil
}

// Canonical returns the canonical form of g, from cache when available.
func (r *Runner) Canonical(ctx context.Context, g *graph.Graph, refresh bool) (*iso.Canonical, bool, error) {
	key := r.Keyer.CertificateKey(graphHash(g))
	hooks := observability.Cache()

	if !refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Debug("cache read failed", "key", key, "err", err)
		}
		if err == nil && hit {
			var cf cachedForm
			if json.Unmarshal(data, &cf) == nil && len(cf.Order) == g.NodeCount() {
				hooks.OnCacheHit(ctx, "cert")
				return &iso.Canonical{Certificate: cf.Certificate, Order: cf.Order}, true, nil
			}
		}
		hooks.OnCacheMiss(ctx, "cert")
	}

	start := time.Now()
	c, err := iso.Canonicalize(ctx, g)
	if err != nil {
		return nil, false, err
	}
	observability.Check().OnCanonicalize(ctx, g.NodeCount(), c.Visited, time.Since(start))
	r.Logger.Debug("canonicalized graph",
		"nodes", g.NodeCount(),
		"visited", c.Visited,
		"automorphisms", c.Automorphisms,
		"duration", time.Since(start))

	if data, err := json.Marshal(cachedForm{Certificate: c.Certificate, Order: c.Order}); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl(TTLCertificate)); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		} else {
			hooks.OnCacheSet(ctx, "cert", len(data))
		}
	}
	return c, false, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) ttl(def time.Duration) time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return def
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func (r *Runner) loadVerdict(ctx context.Context, key string) (verdict, bool) {
	var v verdict
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit || json.Unmarshal(data, &v) != nil {
		observability.Cache().OnCacheMiss(ctx, "verdict")
		return v, false
	}
	observability.Cache().OnCacheHit(ctx, "verdict")
	return v, true
}

func (r *Runner) storeVerdict(ctx context.Context, key string, v verdict) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, r.ttl(TTLVerdict)); err != nil {
		r.Logger.Debug("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "verdict", len(data))
}

// canonicalEngine is the canonical engine backed by the runner's
// certificate cache.
type canonicalEngine struct {
	r       *Runner
	refresh bool
	info    *CacheInfo
}

func (e *canonicalEngine) Name() string { return iso.AlgoCanonical }
func (e *canonicalEngine) Exact() bool  { return true }

func (e *canonicalEngine) Decide(ctx context.Context, g1, g2 *graph.Graph) (iso.Result, error) {
	c1, hit1, err := e.r.Canonical(ctx, g1, e.refresh)
	if err != nil {
		return iso.Result{}, err
	}
	c2, hit2, err := e.r.Canonical(ctx, g2, e.refresh)
	if err != nil {
		return iso.Result{}, err
	}
	e.info.Graph1Hit, e.info.Graph2Hit = hit1, hit2
	return iso.Compare(c1, c2), nil
}

type cachedForm struct {
	Certificate []byte         `json:"certificate"`
	Order       []graph.NodeID `json:"order"`
}

// verdict is a cached check result. Source is the hash of the graph the
// witness maps from; verdict keys are unordered.
type verdict struct {
	Matched   bool                          `json:"matched"`
	Heuristic bool                          `json:"heuristic"`
	Witness   map[graph.NodeID]graph.NodeID `json:"witness"`
	Source    string                        `json:"source"`
}

func (v verdict) result(algorithm, graph1Hash string, elapsed time.Duration) iso.Result {
	witness := v.Witness
	if v.Matched && !v.Heuristic && witness == nil {
		witness = map[graph.NodeID]graph.NodeID{}
	}
	if len(witness) > 0 && v.Source != graph1Hash {
		witness = make(map[graph.NodeID]graph.NodeID, len(v.Witness))
		for a, b := range v.Witness {
			witness[b] = a
		}
	}
	return iso.Result{
		Matched:   v.Matched,
		Heuristic: v.Heuristic,
		Witness:   witness,
		Algorithm: algorithm,
		Elapsed:   elapsed,
	}
}

func load(g *graph.Graph, path string) (*graph.Graph, error) {
	if g != nil {
		return g, nil
	}
	return isoio.ImportJSON(path)
}

// graphHash identifies graph content including node IDs, so cached orders
// and witnesses stay valid for the graph they were computed on.
func graphHash(g *graph.Graph) string {
	data, _ := isoio.Marshal(g)
	return cache.Hash(data)
}
