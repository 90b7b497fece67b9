// Package designfile loads suspension design documents from TOML.
//
// A design document holds everything one solve needs: the vehicle statics,
// the linkage targets, the per-point coordinate bounds, and optionally the
// sample fractions. Angles are written in degrees and converted to radians on
// load; lengths are millimetres throughout. Fixed bound axes are written as
// nan pairs, which TOML supports natively.
package designfile

import (
	"math"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/errors"
)

// Document is the raw TOML schema before unit conversion.
type Document struct {
	Vehicle VehicleSection           `toml:"vehicle"`
	Linkage LinkageSection           `toml:"linkage"`
	Bounds  map[string][3][2]float64 `toml:"bounds"`
	Samples map[string][3]float64    `toml:"samples"`
}

// VehicleSection holds the vehicle statics. Lengths in millimetres, rake in
// degrees, mass in kilograms.
type VehicleSection struct {
	Wheelbase          float64    `toml:"wheelbase"`
	WeightDistribution float64    `toml:"weight_distribution"`
	SprungMass         float64    `toml:"sprung_mass"`
	CG                 [3]float64 `toml:"cg"`
	RideHeight         float64    `toml:"ride_height"`
	Rake               float64    `toml:"rake"`
	LoadedRadius       float64    `toml:"loaded_radius"`
}

// LinkageSection holds the linkage targets. Angles in degrees, gains in
// degrees per millimetre, center heights in percent of CG height.
type LinkageSection struct {
	Type        string  `toml:"type"`
	Axle        string  `toml:"axle"`
	Track       float64 `toml:"track"`
	Toe         float64 `toml:"toe"`
	Camber      float64 `toml:"camber"`
	CamberGain  float64 `toml:"camber_gain"`
	Caster      float64 `toml:"caster"`
	CasterGain  float64 `toml:"caster_gain"`
	KPI         float64 `toml:"kpi"`
	Scrub       float64 `toml:"scrub"`
	RollCenter  float64 `toml:"roll_center"`
	PitchCenter float64 `toml:"pitch_center"`
}

// Load reads and converts a design document from a file.
func Load(path string) (design.Target, design.Bounds, design.Samples, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return design.Target{}, nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
			"read design file %s", path)
	}
	return Parse(data)
}

// Parse converts a TOML design document into validated solver inputs.
func Parse(data []byte) (design.Target, design.Bounds, design.Samples, error) {
	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return design.Target{}, nil, nil, errors.Wrap(errors.ErrCodeInvalidFormat, err,
			"parse design document")
	}

	target := doc.Target()

	bounds := make(design.Bounds, len(doc.Bounds))
	for key, b := range doc.Bounds {
		id := design.PointID(key)
		if !design.Known(id) {
			return design.Target{}, nil, nil, errors.New(errors.ErrCodeInvalidFormat,
				"bounds section names unknown point %q", key)
		}
		bounds[id] = design.Bound(b)
	}

	var samples design.Samples
	if len(doc.Samples) > 0 {
		samples = make(design.Samples, len(doc.Samples))
		for key, f := range doc.Samples {
			id := design.PointID(key)
			if !design.Known(id) {
				return design.Target{}, nil, nil, errors.New(errors.ErrCodeInvalidFormat,
					"samples section names unknown point %q", key)
			}
			samples[id] = design.Fractions(f)
		}
	}

	if err := target.Validate(); err != nil {
		return design.Target{}, nil, nil, err
	}
	if err := bounds.Validate(); err != nil {
		return design.Target{}, nil, nil, err
	}
	return target, bounds, samples, nil
}

// Target converts the document's vehicle and linkage sections to solver
// units: degrees become radians, degree-per-millimetre gains become
// radian-per-millimetre.
func (d Document) Target() design.Target {
	return design.Target{
		Linkage:      design.Linkage(d.Linkage.Type),
		Axle:         design.AxlePosition(d.Linkage.Axle),
		Wheelbase:    d.Vehicle.Wheelbase,
		WeightDist:   d.Vehicle.WeightDistribution,
		SprungMass:   d.Vehicle.SprungMass,
		CG:           d.Vehicle.CG,
		Ride:         d.Vehicle.RideHeight,
		Rake:         radians(d.Vehicle.Rake),
		LoadedRadius: d.Vehicle.LoadedRadius,
		Track:        d.Linkage.Track,
		Toe:          radians(d.Linkage.Toe),
		Camber:       radians(d.Linkage.Camber),
		CamberGain:   radians(d.Linkage.CamberGain),
		Caster:       radians(d.Linkage.Caster),
		CasterGain:   radians(d.Linkage.CasterGain),
		KPI:          radians(d.Linkage.KPI),
		Scrub:        d.Linkage.Scrub,
		RollCenter:   d.Linkage.RollCenter,
		PitchCenter:  d.Linkage.PitchCenter,
	}
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
