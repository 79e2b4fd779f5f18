package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation. In
// serve mode, different API clients get separate cache namespaces.
//
// Example usage:
//
//	// Client-specific keys for uploaded sessions
//	clientKeyer := NewScopedKeyer(NewDefaultKeyer(), "client:abc123:")
//
//	// Global keys for shared demo sessions
//	globalKeyer := NewDefaultKeyer()
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

// FrameKey generates a prefixed key for rendered frame artifacts.
func (k *ScopedKeyer) FrameKey(frameHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(frameHash, opts)
}

// SessionKey generates a prefixed key for parsed session documents.
func (k *ScopedKeyer) SessionKey(id string) string {
	return k.prefix + k.inner.SessionKey(id)
}
