// Package cache stores rendered artifacts keyed by scene content.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for multi-instance servers
//   - [NullCache]: never stores anything, for --no-cache
//
// Keys come from a [Keyer] so callers never build key strings by hand:
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1.2.0:")
//	key := k.ArtifactKey(sceneHash, cache.ArtifactKeyOpts{Format: "png", CellSize: 32})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry. A zero TTL never expires.
// Get reports a miss with ok == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// ArtifactKeyOpts are the render settings that change an artifact's bytes.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	CellSize int    `json:"cell_size,omitempty"`
	Color    bool   `json:"color,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns "artifact:<sha256>" over the scene hash and options.
func (DefaultKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return artifactKey(sceneHash, opts)
}
