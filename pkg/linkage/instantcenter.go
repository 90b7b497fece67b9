package linkage

import (
	"math"

	"github.com/matzehuels/hardpoint/pkg/errors"
)

// infiniteSwingArm stands in for the swing-arm length when the configured
// camber or caster gain is exactly zero. A zero gain means the wheel never
// tilts over travel, so the instant center recedes to infinity; the constant
// keeps the downstream plane fits finite. Millimetres.
const infiniteSwingArm = 1e10

// swingArmLength converts a camber or caster gain (radians of tilt per
// millimetre of travel) into the equivalent swing-arm length.
func swingArmLength(gain float64) float64 {
	if gain == 0 {
		return infiniteSwingArm
	}
	return 1 / math.Atan(math.Abs(gain))
}

// instantCenter locates a planar instant center: the intersection of the
// jacking line, which runs from the contact patch at (x0, 0) through the
// kinematic center at (0, hc), with the circle of swing-arm radius length
// centered on the wheel center (x0, loadedRadius).
//
// Substituting the line into the circle gives a quadratic in the height
// coordinate; sign(hc) picks the root on the kinematic center's side of
// ground, and sign(x0) picks the inboard branch when backing the horizontal
// coordinate out of the circle. hc == 0 degenerates the line to ground level
// and the height is forced to zero directly.
//
// A swing-arm length shorter than the loaded radius can leave the jacking
// line entirely outside the swing circle; both square roots guard their
// radicand and fail rather than propagate NaN.
func instantCenter(x0, hc, length, loadedRadius float64) (horizontal, height float64, err error) {
	if hc == 0 {
		height = 0
	} else {
		k := x0 / hc
		a := 1 + k*k
		disc := loadedRadius*loadedRadius - a*(loadedRadius*loadedRadius-length*length)
		if disc < 0 {
			return 0, 0, errors.New(errors.ErrCodeDegenerateGeometry,
				"jacking line misses the swing circle (swing-arm length %v, loaded radius %v)",
				length, loadedRadius)
		}
		height = (loadedRadius + sign(hc)*math.Sqrt(disc)) / a
	}

	r := height - loadedRadius
	reach := length*length - r*r
	if reach < 0 {
		return 0, 0, errors.New(errors.ErrCodeDegenerateGeometry,
			"instant center height %v out of swing-arm reach %v", height, length)
	}
	horizontal = x0 - sign(x0)*math.Sqrt(reach)
	return horizontal, height, nil
}

// sign returns ±1 matching x, and +1 for zero.
func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
