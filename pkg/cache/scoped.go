package cache

// ScopedKeyer wraps a Keyer with a prefix so that several projects can share
// one cache directory without colliding:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "project:pump-station:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// GraphKey implements Keyer.
func (k *ScopedKeyer) GraphKey(dotHash string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(dotHash, opts)
}
