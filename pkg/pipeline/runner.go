package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/skyline/pkg/cache"
	"github.com/matzehuels/skyline/pkg/observability"
	"github.com/matzehuels/skyline/pkg/scene"
)

// Runner executes pipelines against a cache. It holds no per-run state, so
// one Runner may serve many goroutines.
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
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute draws the scene described by opts and renders every requested
// format, serving all of them from the cache when possible.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	result := &Result{
		RenderID:  uuid.NewString(),
		Seed:      opts.Config.SeedValue(),
		SceneHash: r.Keyer.SceneHash(opts.Config),
	}

	if !opts.Refresh {
		if artifacts, ok := r.lookup(ctx, result.SceneHash, opts); ok {
			result.Artifacts = artifacts
			result.CacheInfo.RenderHit = true
			logger.Debug("served from cache", "render_id", result.RenderID, "formats", opts.Formats)
			return result, nil
		}
	}

	observability.Render().OnRenderStart(ctx, result.Seed, opts.Formats)
	drawStart := time.Now()
	cv, stats := scene.Render(opts.Config, scene.NewRand(result.Seed), scene.WithLogger(logger))
	result.Canvas = cv
	result.Stats.Scene = stats
	result.Stats.DrawTime = time.Since(drawStart)

	renderStart := time.Now()
	artifacts, err := Render(cv, stats, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Render().OnRenderComplete(ctx, result.Seed, stats.Buildings,
		result.Stats.DrawTime+result.Stats.RenderTime, err)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts

	for format, data := range artifacts {
		key := r.Keyer.ArtifactKey(result.SceneHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err != nil {
			logger.Warn("cache write failed", "format", format, "err", err)
			continue
		}
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}

	logger.Info("rendered skyline",
		"render_id", result.RenderID,
		"seed", result.Seed,
		"buildings", stats.Buildings,
		"formats", opts.Formats,
		"duration", result.Stats.DrawTime+result.Stats.RenderTime)
	return result, nil
}

// RenderPreset renders a single catalog preset on its own small canvas.
func (r *Runner) RenderPreset(ctx context.Context, name string, opts Options) (*Result, error) {
	opts.Config = scene.PresetConfig(name)
	return r.Execute(ctx, opts)
}

// lookup returns the cached artifacts only if every format is present.
func (r *Runner) lookup(ctx context.Context, sceneHash string, opts Options) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(sceneHash, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "err", err)
			return nil, false
		}
		if !hit {
			observability.Cache().OnCacheMiss(ctx, format)
			return nil, false
		}
		observability.Cache().OnCacheHit(ctx, format)
		artifacts[format] = data
	}
	return artifacts, true
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
