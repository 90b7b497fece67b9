// Package linkage builds and solves double-wishbone suspension linkages.
//
// A System couples the kinematic frame graph with the vehicle design targets
// and the sampled design space. Build constructs the unsolved system;
// GenerateLinkage runs the ordered solver stages that place every frame and
// hardpoint. The solve is closed form: no iteration, no convergence loop, and
// a given (target, bounds, samples) input always produces the same geometry.
package linkage

import (
	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/errors"
	"github.com/matzehuels/hardpoint/pkg/frame"
	"github.com/matzehuels/hardpoint/pkg/geom"
)

// System is a double-wishbone linkage: the frame tree, the design intent that
// shapes it, and the sampled design space the pickups are drawn from.
type System struct {
	Graph  *frame.Graph
	Target design.Target
	Space  *design.Space

	solved bool
}

// Build validates the target and design space and constructs the unsolved
// frame tree. Only the double-wishbone topology is supported; any other
// linkage type fails with UNSUPPORTED_LINKAGE.
func Build(target design.Target, bounds design.Bounds, samples design.Samples) (*System, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}
	space, err := design.NewSpace(bounds, samples)
	if err != nil {
		return nil, err
	}
	g, err := frame.New(descriptors())
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "construct linkage topology")
	}
	g.SetBoundChecker(space.Bounds())

	return &System{Graph: g, Target: target, Space: space}, nil
}

// Solved reports whether GenerateLinkage has completed on this system.
func (s *System) Solved() bool { return s.solved }

// EvaluatePoint re-expresses a point from one frame in another. This is the
// sole read API external consumers use to pull solved hardpoints.
func (s *System) EvaluatePoint(ref frame.PointRef, source, target string) (geom.Vec, error) {
	return s.Graph.EvaluatePoint(ref, source, target)
}

// SetPoint overwrites a named point, converting from sourceFrame when given.
// Out-of-bound axes on design pickups are warnings, not errors.
func (s *System) SetPoint(key, frameKey string, value geom.Vec, sourceFrame string) ([]frame.BoundViolation, error) {
	return s.Graph.SetPoint(key, frameKey, value, sourceFrame)
}
