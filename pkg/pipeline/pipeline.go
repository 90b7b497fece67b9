// Package pipeline provides the core hardpoint pipeline.
//
// This package implements the complete parse → solve → render pipeline that
// is shared by the CLI and the HTTP service. Centralizing this logic keeps
// behavior consistent across entry points.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Parse: Read the design file into a target, bounds, and samples
//  2. Solve: Generate the suspension linkage for the sampled design
//  3. Render: Produce output artifacts (JSON report, elevation SVGs, frame tree)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    DesignFile: "design.toml",
//	    Formats:    []string{"json", "svg-front"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := result.Artifacts["json"]
package pipeline

import (
	"fmt"
	"time"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/linkage"
	"github.com/matzehuels/hardpoint/pkg/render"
)

const (
	// DefaultFraction is the design-space fraction applied when no explicit
	// samples are given. 0.5 places every sampled coordinate at the middle
	// of its bound.
	DefaultFraction = 0.5

	// DefaultFormat is the output format used when none is requested.
	DefaultFormat = FormatJSON
)

// Output format constants.
const (
	FormatJSON     = "json"
	FormatSVGFront = "svg-front"
	FormatSVGSide  = "svg-side"
	FormatDOT      = "dot"
	FormatTree     = "tree"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:     true,
	FormatSVGFront: true,
	FormatSVGSide:  true,
	FormatDOT:      true,
	FormatTree:     true,
}

// Options contains all configuration for the hardpoint pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Either DesignFile names a TOML file on disk, or Design
	// carries the file content inline (the API request path).
	DesignFile string `json:"design_file,omitempty"`
	Design     string `json:"design,omitempty"`

	// Solve options. Samples from the design file can be overridden here;
	// when no samples are present at all, Fraction is applied uniformly.
	// A zero Fraction means DefaultFraction; use Samples to place a
	// coordinate exactly at its lower bound.
	Samples  design.Samples `json:"samples,omitempty"`
	Fraction float64        `json:"fraction,omitempty"`

	// Render options.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses the cache and recomputes everything.
	Refresh bool `json:"refresh,omitempty"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// System is the solved linkage. Nil when every requested artifact was
	// served from the cache.
	System *linkage.System

	// Report is the frame-by-frame hardpoint report. Nil on a full cache hit.
	Report *render.Report

	// SolveKey is the content hash of the solve inputs.
	SolveKey string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	FrameCount int
	PointCount int
	ParseTime  time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for a pipeline run.
type CacheInfo struct {
	// Hit reports that every requested artifact came from the cache and the
	// solve was skipped entirely.
	Hit bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, svg-front, svg-side, dot, tree)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DesignFile == "" && o.Design == "" {
		return fmt.Errorf("design_file or design is required")
	}
	if o.Fraction < 0 || o.Fraction > 1 {
		return fmt.Errorf("fraction %v out of range [0, 1]", o.Fraction)
	}
	if o.Fraction == 0 {
		o.Fraction = DefaultFraction
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}
