package design

import (
	"github.com/matzehuels/hardpoint/pkg/errors"
)

// Linkage identifies the suspension linkage topology.
type Linkage string

// LinkageDoubleWishbone is the only topology the solver implements.
const LinkageDoubleWishbone Linkage = "double-wishbone"

// AxlePosition identifies which axle the linkage belongs to.
type AxlePosition string

// Axle positions.
const (
	AxleFront AxlePosition = "front"
	AxleRear  AxlePosition = "rear"
)

// Target is the flat set of vehicle-level design intent values consumed by
// the solver. Lengths are millimetres, angles radians, gains radians per
// millimetre, and the center heights percentages of CG height. Target is
// read-only input: the solver never mutates it.
type Target struct {
	Linkage Linkage
	Axle    AxlePosition

	// Vehicle statics
	Wheelbase    float64    // mm
	WeightDist   float64    // front weight distribution, percent
	SprungMass   float64    // kg
	CG           [3]float64 // center of gravity, mm; index 2 is height
	Ride         float64    // ride height, mm
	Rake         float64    // rake angle, rad
	LoadedRadius float64    // tire loaded radius, mm

	// Linkage targets
	Track       float64 // mm
	Toe         float64 // rad, positive out
	Camber      float64 // rad
	CamberGain  float64 // rad/mm
	Caster      float64 // rad
	CasterGain  float64 // rad/mm
	KPI         float64 // kingpin inclination, rad
	Scrub       float64 // maximum mechanical scrub, mm
	RollCenter  float64 // normalized roll center height, percent of CG height
	PitchCenter float64 // normalized pitch center height, percent of CG height
}

// Validate checks the structural fields the solver dispatches on.
// Geometric plausibility of the numeric targets is the designer's problem.
func (t Target) Validate() error {
	if t.Linkage != LinkageDoubleWishbone {
		return errors.New(errors.ErrCodeUnsupportedLinkage, "unsupported linkage type %q", t.Linkage)
	}
	if t.Axle != AxleFront && t.Axle != AxleRear {
		return errors.New(errors.ErrCodeInvalidDesign, "axle must be %q or %q, got %q",
			AxleFront, AxleRear, t.Axle)
	}
	if t.Wheelbase <= 0 {
		return errors.New(errors.ErrCodeInvalidDesign, "wheelbase must be positive, got %v", t.Wheelbase)
	}
	if t.Track <= 0 {
		return errors.New(errors.ErrCodeInvalidDesign, "track must be positive, got %v", t.Track)
	}
	if t.LoadedRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidDesign, "loaded radius must be positive, got %v", t.LoadedRadius)
	}
	return nil
}
