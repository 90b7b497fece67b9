package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hardpoint/pkg/cache"
	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/linkage"
	"github.com/matzehuels/hardpoint/pkg/observability"
	"github.com/matzehuels/hardpoint/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete parse → solve → render pipeline with caching.
//
// Artifacts are cached per format under a key derived from the full solve
// input. When every requested format is already cached, the solve is skipped
// and Result.System and Result.Report are nil.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	target, bounds, samples, err := Parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Stats.ParseTime = time.Since(parseStart)

	effective := effectiveSamples(bounds, samples, opts.Fraction)
	result.SolveKey = cache.SolveKey(target, bounds, effective)

	// Try to serve every artifact from the cache.
	if !opts.Refresh {
		if artifacts, ok := r.lookupArtifacts(ctx, result.SolveKey, opts.Formats); ok {
			result.Artifacts = artifacts
			result.CacheInfo.Hit = true
			r.Logger.Info("served from cache",
				"formats", opts.Formats,
				"key", result.SolveKey)
			return result, nil
		}
	}

	// Stage 2: Solve
	solveStart := time.Now()
	s, err := Solve(target, bounds, samples, opts.Fraction)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	result.System = s
	result.Stats.SolveTime = time.Since(solveStart)

	r.Logger.Info("generated linkage",
		"linkage", target.Linkage,
		"axle", target.Axle,
		"duration", result.Stats.SolveTime)

	// Stage 3: Render
	renderStart := time.Now()
	rep, err := render.BuildReport(s)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	result.Report = rep
	result.Stats.FrameCount = len(rep.Frames)
	for _, f := range rep.Frames {
		result.Stats.PointCount += len(f.Points)
	}

	artifacts, err := Render(s, rep, opts.Formats)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	for format, data := range artifacts {
		key := cache.ReportKey(result.SolveKey, format)
		if err := r.Cache.Set(ctx, key, data, cache.TTLReport); err == nil {
			observability.Cache().OnCacheSet(format, len(data))
		}
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// SolveOnly runs parse and solve without rendering. Used by consumers that
// need the live system, like the interactive frame browser.
func (r *Runner) SolveOnly(ctx context.Context, opts Options) (*linkage.System, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	target, bounds, samples, err := Parse(opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	s, err := Solve(target, bounds, samples, opts.Fraction)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}
	return s, nil
}

// lookupArtifacts fetches every requested format from the cache. It reports
// success only when all formats are present.
func (r *Runner) lookupArtifacts(ctx context.Context, solveKey string, formats []string) (map[string][]byte, bool) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		key := cache.ReportKey(solveKey, format)
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			observability.Cache().OnCacheMiss(format)
			return nil, false
		}
		observability.Cache().OnCacheHit(format)
		artifacts[format] = data
	}
	return artifacts, true
}

// effectiveSamples expands the sampling state that actually feeds the solve,
// so that runs with different uniform fractions key differently.
func effectiveSamples(bounds design.Bounds, samples design.Samples, fraction float64) design.Samples {
	if len(samples) > 0 {
		return samples
	}
	out := design.Samples{}
	for id := range bounds {
		out[id] = design.Fractions{fraction, fraction, fraction}
	}
	return out
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
