// Package pkg provides the core libraries for hardpoint suspension design.
//
// # Overview
//
// Hardpoint generates double-wishbone suspension hardpoints from a design
// target (wheelbase, track, camber, caster, kingpin inclination, instant
// center gains) and a bounded design space of pickup points. The pkg
// directory is organized into four main areas:
//
//  1. Geometry (geom, frame) - transforms, subspaces, and the frame tree
//  2. Design (design, designfile) - targets, bounds, sampling, TOML input
//  3. Solving (linkage) - the staged linkage solver
//  4. Output (render, pipeline, cache) - reports, drawings, orchestration
//
// # Architecture
//
// The typical data flow through hardpoint:
//
//	Design file (TOML)
//	         ↓
//	    [designfile] package (parse target, bounds, samples)
//	         ↓
//	    [design] package (design space, inheritance, resolution)
//	         ↓
//	    [linkage] package (frame tree + staged solver)
//	         ↓
//	    [render] package (JSON report, elevation SVGs, frame tree)
//
// # Quick Start
//
// Solve a design and render the hardpoint report:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/hardpoint/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    DesignFile: "design.toml",
//	    Formats:    []string{"json", "svg-front"},
//	})
//
// Or drive the solver directly:
//
//	target, bounds, samples, _ := designfile.Load("design.toml")
//	s, _ := linkage.Build(target, bounds, samples)
//	_ = s.Space.SetUniformFraction(0.5)
//	_ = linkage.GenerateLinkage(s)
//	pos, _ := s.EvaluatePoint(frame.Named("LB"), "LA", "I")
//
// # Main Packages
//
// [geom] - Vectors, homogeneous transforms with Euler angle sequences, and
// line/plane subspaces built on gonum matrices.
//
// [frame] - The frame graph: a tree of coordinate frames with rigid
// transforms, point storage, and cross-frame point evaluation.
//
// [design] - Design targets, per-point bound tables, axis inheritance, and
// fraction-based sampling of the design space.
//
// [designfile] - TOML design file parsing with unit conversion.
//
// [linkage] - The double-wishbone topology and the staged solver that places
// frames and resolves hardpoints against the design targets.
//
// [render] - Hardpoint reports in frame-local and ground coordinates, with
// JSON, elevation SVG, and Graphviz frame-tree output.
//
// [pipeline] - The parse → solve → render pipeline shared by CLI and API,
// with per-artifact caching.
//
// [cache] - File, Redis, and null cache backends keyed by solve inputs.
//
// [errors] - Coded errors shared across packages.
//
// [observability] - Hook registries for solver stages and cache activity.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/geom
// [frame]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/frame
// [design]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/design
// [designfile]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/designfile
// [linkage]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/linkage
// [render]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/hardpoint/pkg/observability
package pkg
