// Package cache stores rendered artifacts between CLI runs.
//
// Rendering a wiring graph through Graphviz is the slowest step of a build,
// and the graph rarely changes between runs. Artifacts are keyed by a hash of
// the DOT source plus the render options, so an unchanged drawing skips the
// render entirely.
//
// [FileCache] keeps entries under the user cache directory; [NullCache]
// disables caching. Keys are built by a [Keyer], optionally scoped per
// project with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value and true on a hit. Expired and unreadable
	// entries are misses, not errors.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GraphKeyOpts are the render options that change a graph artifact.
type GraphKeyOpts struct {
	Format          string  `json:"format"`
	Detailed        bool    `json:"detailed"`
	ShowUnconnected bool    `json:"show_unconnected"`
	Scale           float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	// GraphKey keys a rendered wiring graph by the hash of its DOT source.
	GraphKey(dotHash string, opts GraphKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// GraphKey implements Keyer.
func (DefaultKeyer) GraphKey(dotHash string, opts GraphKeyOpts) string {
	return hashKey("graph", dotHash, opts)
}

// Fetch returns the cached value for key, or calls build, stores its result
// with ttl and returns it. The bool reports a cache hit.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, build func() ([]byte, error)) ([]byte, bool, error) {
	if data, ok, err := c.Get(ctx, key); err == nil && ok {
		return data, true, nil
	}
	data, err := build()
	if err != nil {
		return nil, false, err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return data, false, err
	}
	return data, false, nil
}
