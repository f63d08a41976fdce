package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pathviz/pkg/cache"
	"github.com/matzehuels/pathviz/pkg/observability"
	"github.com/matzehuels/pathviz/pkg/scene"
)

// keyTypeArtifact labels artifact cache events.
const keyTypeArtifact = "artifact"

// Runner encapsulates rendering with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different scenes.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute renders s into every requested format, serving from the cache
// where possible. Nothing is returned unless every format succeeds.
func (r *Runner) Execute(ctx context.Context, s *scene.Scene, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	sceneHash, err := s.Hash()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result := &Result{
		SceneHash: sceneHash,
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}

	for i, format := range opts.Formats {
		if opts.Progress != nil {
			opts.Progress(i+1, len(opts.Formats), format)
		}
		data, hit, err := r.RenderWithCacheInfo(ctx, s, result.SceneHash, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.CacheInfo.Hits[format] = hit
	}
	result.Stats.RenderTime = time.Since(start)

	r.Logger.Debug("rendered scene",
		"kind", s.Kind,
		"formats", opts.Formats,
		"cached", result.CacheInfo.AllHit(),
		"duration", result.Stats.RenderTime)
	return result, nil
}

// RenderWithCacheInfo renders one format with caching and reports whether it
// was a cache hit. Cache failures are logged and treated as misses.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, s *scene.Scene, sceneHash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(s.Kind, format))
	hooks := observability.Cache()

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			r.Logger.Warn("cache read failed", "err", err)
		}
		if hit {
			hooks.OnCacheHit(ctx, keyTypeArtifact)
			return data, true, nil
		}
		hooks.OnCacheMiss(ctx, keyTypeArtifact)
	}

	render := observability.Render()
	render.OnRenderStart(ctx, s.Kind, format)
	start := time.Now()
	data, err := RenderFormat(ctx, s, format, opts)
	render.OnRenderComplete(ctx, s.Kind, format, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, opts.TTL); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, keyTypeArtifact, len(data))
	}
	return data, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
