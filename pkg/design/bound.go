package design

import (
	"math"

	"github.com/matzehuels/hardpoint/pkg/errors"
	"github.com/matzehuels/hardpoint/pkg/frame"
	"github.com/matzehuels/hardpoint/pkg/geom"
)

// Bound is the per-axis (min, max) coordinate range of one pickup point in
// its owning frame's coordinates, millimetres. A NaN pair marks a fixed
// design parameter whose value is not drawn from a range. A (0, 0) pair is a
// degenerate range eligible for inheritance from a donor point.
type Bound [3][2]float64

// Min returns the lower bound on the axis.
func (b Bound) Min(a Axis) float64 { return b[a][0] }

// Max returns the upper bound on the axis.
func (b Bound) Max(a Axis) float64 { return b[a][1] }

// Width returns max − min on the axis.
func (b Bound) Width(a Axis) float64 { return b[a][1] - b[a][0] }

// IsFixed reports whether the axis is a fixed parameter (NaN bounds).
func (b Bound) IsFixed(a Axis) bool {
	return math.IsNaN(b[a][0]) || math.IsNaN(b[a][1])
}

// IsDegenerate reports whether both bound values on the axis are exactly
// zero, the marker for axis inheritance.
func (b Bound) IsDegenerate(a Axis) bool {
	return b[a][0] == 0 && b[a][1] == 0
}

// Validate checks min ≤ max on every real-valued axis.
func (b Bound) Validate() error {
	for a := Longitudinal; a <= Vertical; a++ {
		if b.IsFixed(a) {
			continue
		}
		if b[a][0] > b[a][1] {
			return errors.New(errors.ErrCodeInvalidBound,
				"%s bound min %v exceeds max %v", a, b[a][0], b[a][1])
		}
	}
	return nil
}

// Sample maps normalized fractions onto the bound ranges:
// min + fraction·(max − min) per axis. Fixed (NaN) axes resolve to zero;
// their value is owned by the solver, not the design space.
func (b Bound) Sample(f Fractions) geom.Vec {
	var out geom.Vec
	for a := Longitudinal; a <= Vertical; a++ {
		if b.IsFixed(a) {
			continue
		}
		out[a] = b[a][0] + f[a]*(b[a][1]-b[a][0])
	}
	return out
}

// Bounds maps every linkage pickup point to its coordinate bound.
type Bounds map[PointID]Bound

// Validate checks that every known point has a well-formed bound and that no
// unknown points are present.
func (bs Bounds) Validate() error {
	for id := range bs {
		if !Known(id) {
			return errors.New(errors.ErrCodeInvalidBound, "unknown point %q", id)
		}
	}
	for _, id := range LinkagePoints {
		b, ok := bs[id]
		if !ok {
			return errors.New(errors.ErrCodeInvalidBound, "missing bound for point %q", id)
		}
		if err := b.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidBound, err, "point %q", id)
		}
	}
	return nil
}

// Check implements frame.BoundChecker: each axis of pos outside the point's
// bound range yields one violation. Points without bounds and fixed axes are
// never violations, and neither are writes into a frame other than the
// point's owning frame, where the bound coordinates are meaningless.
func (bs Bounds) Check(point, frameKey string, pos geom.Vec) []frame.BoundViolation {
	b, ok := bs[PointID(point)]
	if !ok {
		return nil
	}
	if FrameOf(PointID(point)) != frameKey {
		return nil
	}
	var out []frame.BoundViolation
	for a := Longitudinal; a <= Vertical; a++ {
		if b.IsFixed(a) {
			continue
		}
		if pos[a] < b[a][0] || pos[a] > b[a][1] {
			out = append(out, frame.BoundViolation{
				Point: point,
				Axis:  int(a),
				Min:   b[a][0],
				Max:   b[a][1],
				Value: pos[a],
			})
		}
	}
	return out
}
