package cache

// ScopedKeyer wraps a Keyer with a prefix. A shared Redis cache uses it to
// keep projects apart:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "efxvdb:myproject:")
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

// ContainerKey generates a prefixed container key.
func (k *ScopedKeyer) ContainerKey(designHash string, opts ContainerKeyOpts) string {
	return k.prefix + k.inner.ContainerKey(designHash, opts)
}
