package cache

// ScopedKeyer prefixes every key of an inner Keyer, so that several
// deployments can share one Redis instance without collisions:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "isocheck:staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses DefaultKeyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) CertificateKey(graphHash string) string {
	return k.prefix + k.inner.CertificateKey(graphHash)
}

func (k *ScopedKeyer) VerdictKey(opts VerdictKeyOpts) string {
	return k.prefix + k.inner.VerdictKey(opts)
}
