// Package cache stores Graphviz layouts and rendered artifacts.
//
// Running Graphviz dominates conversion time, so the pipeline caches the
// laid-out DOT text by a hash of the source and the engine, and every
// rendered artifact by the layout hash and the drawing options. Three
// backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP server)
//   - [NullCache]: stores nothing (--no-cache)
//
// Keys are built by a [Keyer] so that every entry point derives the same key
// from the same inputs.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry expiry.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired
	// entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// LayoutKeyOpts are the inputs besides the DOT source that change a layout.
type LayoutKeyOpts struct {
	Engine string `json:"engine"`
}

// ArtifactKeyOpts are the inputs besides the layout that change an artifact.
type ArtifactKeyOpts struct {
	Format      string  `json:"format"`
	Policy      string  `json:"policy"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	FrameWidth  float64 `json:"frame_width"`
	FrameHeight float64 `json:"frame_height"`
	NodeRadius  float64 `json:"node_radius"`
	LabelScale  float64 `json:"label_scale"`
	Background  string  `json:"background"`
}
