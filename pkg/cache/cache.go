// Package cache stores canonical certificates and verdicts between checks.
//
// A [Cache] is a plain byte store with TTLs. Three backends exist:
//   - [NullCache]: stores nothing (caching disabled)
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for API servers
//
// Keys come from a [Keyer] so that all callers agree on the layout:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.CertificateKey(cache.Hash(graphJSON))
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a key-value store for cached results.
//
// Get reports a miss with ok=false and a nil error. Implementations must be
// safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	// CertificateKey is the key of a graph's canonical form. graphHash
	// identifies the graph content, typically Hash of its normalized JSON.
	CertificateKey(graphHash string) string

	// VerdictKey is the key of a check result for engines without a
	// per-graph canonical form.
	VerdictKey(opts VerdictKeyOpts) string
}

// VerdictKeyOpts identifies a check. The two graph hashes are unordered:
// swapping them yields the same key.
type VerdictKeyOpts struct {
	Algorithm string
	Graph1    string
	Graph2    string
}

// Format version of cached payloads. Bump when the certificate layout or the
// verdict encoding changes.
const keyVersion = "v1"

// DefaultKeyer is the standard key layout.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard key layout.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// CertificateKey returns "cert:<version>:<graphHash>".
func (DefaultKeyer) CertificateKey(graphHash string) string {
	return "cert:" + keyVersion + ":" + graphHash
}

// VerdictKey hashes the algorithm and the sorted graph hashes.
func (DefaultKeyer) VerdictKey(opts VerdictKeyOpts) string {
	a, b := opts.Graph1, opts.Graph2
	if b < a {
		a, b = b, a
	}
	return hashKey("verdict:"+keyVersion, opts.Algorithm, a, b)
}
