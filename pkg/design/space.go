package design

import (
	"github.com/matzehuels/hardpoint/pkg/errors"
	"github.com/matzehuels/hardpoint/pkg/geom"
)

// Fractions holds one normalized sample fraction per axis, each in [0, 1].
// Axes that are fixed, auto-calculated, or degenerate stay at 0.
type Fractions [3]float64

// Samples maps pickup points to their sample fractions. Points absent from
// the map sample at fraction 0 (the lower bound) on every axis.
type Samples map[PointID]Fractions

// Space is a validated, normalized design space: bounds with inheritance
// applied, plus the current sample. Construct with NewSpace; the zero value
// is not usable.
type Space struct {
	bounds    Bounds
	samples   Samples
	inherited map[PointID][]Inheritance // rules that fired during normalization
}

// NewSpace validates bounds and samples and applies the load-time
// normalizations: degenerate axes inherit their donor's bound range, and
// sample fractions are checked against the sampled-axis masks (a nonzero
// fraction on a fixed, degenerate, or auto-calculated axis is an
// INVALID_SAMPLE error). The input maps are copied; the caller's values are
// not mutated.
func NewSpace(bounds Bounds, samples Samples) (*Space, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}

	s := &Space{
		bounds:    make(Bounds, len(bounds)),
		samples:   make(Samples, len(bounds)),
		inherited: make(map[PointID][]Inheritance),
	}
	for id, b := range bounds {
		s.bounds[id] = b
	}

	// Inheritance: copy donor ranges onto degenerate recipients. Resolution
	// order guarantees donors normalize before recipients.
	for _, id := range LinkagePoints {
		for _, rule := range InheritanceOf(id) {
			if !bounds[id].IsDegenerate(rule.Axis) {
				continue
			}
			b := s.bounds[id]
			b[rule.Axis] = s.bounds[rule.Donor][rule.Axis]
			s.bounds[id] = b
			s.inherited[id] = append(s.inherited[id], rule)
		}
	}

	for id, f := range samples {
		if !Known(id) {
			return nil, errors.New(errors.ErrCodeInvalidSample, "unknown point %q", id)
		}
		if err := s.checkFractions(id, f); err != nil {
			return nil, err
		}
		s.samples[id] = f
	}
	return s, nil
}

// checkFractions validates one point's fractions against its mask and the
// normalized bounds.
func (s *Space) checkFractions(id PointID, f Fractions) error {
	mask := SampledAxes(id)
	b := s.bounds[id]
	for a := Longitudinal; a <= Vertical; a++ {
		if f[a] < 0 || f[a] > 1 {
			return errors.New(errors.ErrCodeInvalidSample,
				"point %q %s fraction %v outside [0, 1]", id, a, f[a])
		}
		if f[a] == 0 {
			continue
		}
		if !mask[a] {
			return errors.New(errors.ErrCodeInvalidSample,
				"point %q %s axis is auto-calculated; fraction must be 0", id, a)
		}
		if b.IsFixed(a) || b.Width(a) == 0 {
			return errors.New(errors.ErrCodeInvalidSample,
				"point %q %s axis has zero-width bound; fraction must be 0", id, a)
		}
	}
	return nil
}

// SetSample overwrites one point's sample fractions, subject to the same
// validation as NewSpace.
func (s *Space) SetSample(id PointID, f Fractions) error {
	if !Known(id) {
		return errors.New(errors.ErrCodeInvalidSample, "unknown point %q", id)
	}
	if err := s.checkFractions(id, f); err != nil {
		return err
	}
	s.samples[id] = f
	return nil
}

// SetUniformFraction sets every samplable axis of every point to the given
// fraction, leaving fixed, degenerate, and auto-calculated axes at 0. This is
// the "midpoint design" helper used when exploring defaults.
func (s *Space) SetUniformFraction(f float64) error {
	if f < 0 || f > 1 {
		return errors.New(errors.ErrCodeInvalidSample, "fraction %v outside [0, 1]", f)
	}
	for _, id := range LinkagePoints {
		mask := SampledAxes(id)
		b := s.bounds[id]
		var fr Fractions
		for a := Longitudinal; a <= Vertical; a++ {
			if mask[a] && !b.IsFixed(a) && b.Width(a) != 0 {
				fr[a] = f
			}
		}
		s.samples[id] = fr
	}
	return nil
}

// Bound returns the normalized bound of a point (after inheritance).
func (s *Space) Bound(id PointID) Bound { return s.bounds[id] }

// Bounds returns the normalized bound table. The returned map is shared;
// callers must treat it as read-only.
func (s *Space) Bounds() Bounds { return s.bounds }

// Sample returns the current fractions of a point.
func (s *Space) Sample(id PointID) Fractions { return s.samples[id] }

// Resolve maps every pickup point's fractions through its bound into an
// absolute coordinate in the owning frame. Inherited axes are copied from
// the donor's resolved position so the two points coincide exactly on that
// axis, not merely share a range.
func (s *Space) Resolve() map[PointID]geom.Vec {
	out := make(map[PointID]geom.Vec, len(LinkagePoints))
	for _, id := range LinkagePoints {
		pos := s.bounds[id].Sample(s.samples[id])
		for _, rule := range s.inherited[id] {
			pos[rule.Axis] = out[rule.Donor][rule.Axis]
		}
		out[id] = pos
	}
	return out
}
