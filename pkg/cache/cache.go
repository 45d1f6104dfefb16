// Package cache provides pluggable caching for the visualization pipeline.
//
// Three backends are available: a file cache for CLI usage, a Redis cache
// for shared environments, and a null cache that disables caching entirely.
// Keys are produced by a [Keyer] so every stage of the pipeline (graph
// build, layout, rendered artifacts) gets a stable, content-derived key.
package cache

import (
	"context"
	"time"
)

// Stage TTLs. Graphs and layouts are cheap to recompute, artifacts less so.
const (
	TTLGraph    = 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage backend contract. Implementations must treat a
// missing key as (nil, false, nil), not an error.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// =============================================================================
// Key Generation
// =============================================================================

// GraphKeyOpts are the parameters that distinguish graph builds of the
// same source document.
type GraphKeyOpts struct {
	SubgraphPath string // Non-empty when only a subtree was built
}

// LayoutKeyOpts are the parameters that distinguish layouts of the same
// graph.
type LayoutKeyOpts struct {
	Engine       string
	NodeSpacing  float64
	LevelSpacing float64
	Seed         int64 // Force-layout scatter seed
}

// ArtifactKeyOpts are the parameters that distinguish rendered artifacts
// of the same layout.
type ArtifactKeyOpts struct {
	Format string
	Width  int
	Height int
}

// Keyer generates cache keys for the pipeline stages.
type Keyer interface {
	// GraphKey keys a built graph by its source document hash.
	GraphKey(sourceHash string, opts GraphKeyOpts) string

	// LayoutKey keys a computed layout by its input graph hash.
	LayoutKey(graphHash string, opts LayoutKeyOpts) string

	// ArtifactKey keys a rendered artifact by its input layout hash.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes the stage inputs into prefixed keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// GraphKey generates a key for graph caching.
func (k *DefaultKeyer) GraphKey(sourceHash string, opts GraphKeyOpts) string {
	return hashKey("graph", sourceHash, opts)
}

// LayoutKey generates a key for layout caching.
func (k *DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey generates a key for artifact caching.
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
