// Package cache provides pluggable byte caching for rendered artifacts and
// parsed sessions.
//
// Keys are derived from content hashes, never from frame indices: two
// sessions sharing an identical frame share its cached artifacts, and editing
// a session file invalidates exactly the frames that changed.
package cache

import (
	"context"
	"time"
)

// TTLs by entry class. Artifacts are cheap to regenerate, sessions are not.
const (
	// TTLArtifact is the lifetime of rendered frame artifacts (SVG, JSON,
	// PNG, PDF, DOT).
	TTLArtifact = 7 * 24 * time.Hour

	// TTLSession is the lifetime of parsed session documents.
	TTLSession = 30 * 24 * time.Hour
)

// Cache is a byte-oriented cache with TTL support.
//
// Implementations: [FileCache] (CLI), [RedisCache] (serve mode),
// [NullCache] (caching disabled).
type Cache interface {
	// Get retrieves a value. The second return reports whether the key was
	// found; an expired or corrupt entry is a miss, not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// FrameKeyOpts captures everything besides the frame content that affects a
// rendered artifact.
type FrameKeyOpts struct {
	Module     string  // algorithm module tag the frame was dispatched under
	Format     string  // output format (svg, json, png, pdf, dot)
	Scale      float64 // raster scale factor, 0 for vector formats
	Background string  // canvas background, "" for formats without one
}

// Keyer generates cache keys for the two entry classes.
type Keyer interface {
	// FrameKey generates a key for a rendered frame artifact. frameHash is
	// the content hash of the frame's canonical JSON.
	FrameKey(frameHash string, opts FrameKeyOpts) string

	// SessionKey generates a key for a parsed session document.
	SessionKey(id string) string
}

// DefaultKeyer is the standard key generation scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FrameKey generates a key of the form "frame:<sha256>".
func (k *DefaultKeyer) FrameKey(frameHash string, opts FrameKeyOpts) string {
	return hashKey("frame", frameHash, opts.Module, opts.Format, opts.Scale, opts.Background)
}

// SessionKey generates a key of the form "session:<id>".
func (k *DefaultKeyer) SessionKey(id string) string {
	return "session:" + id
}
