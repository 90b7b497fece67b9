package geom

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SequenceZYX is the default Euler angle sequence: yaw about z, then pitch
// about y, then roll about x. This matches the intrinsic z-y′-x″ Tait-Bryan
// convention used for all vehicle frames.
const SequenceZYX = "ZYX"

// Translation returns the 4×4 homogeneous translation matrix for offset.
func Translation(offset Vec) *mat.Dense {
	m := identity4()
	m.Set(0, 3, offset[0])
	m.Set(1, 3, offset[1])
	m.Set(2, 3, offset[2])
	return m
}

// Rotation returns the 4×4 homogeneous rotation matrix for the given Euler
// angles applied in the given axis sequence. Angles are always indexed by
// axis (angles[0] about x, angles[1] about y, angles[2] about z) regardless
// of sequence order. An empty sequence defaults to SequenceZYX.
//
// The sequence is composed left to right: Rotation(a, "ZYX") is
// Rz(a[2])·Ry(a[1])·Rx(a[0]).
func Rotation(angles Vec, sequence string) *mat.Dense {
	if sequence == "" {
		sequence = SequenceZYX
	}
	m := identity4()
	for _, axis := range sequence {
		var next mat.Dense
		next.Mul(m, axisRotation(axis, angles[axisIndex(axis)]))
		m = &next
	}
	return m
}

// reversed returns the axis sequence in the opposite order, used to build
// inverse rotations from negated angles.
func reversed(sequence string) string {
	r := []rune(sequence)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

// Transform is a rigid transform between a child frame and its parent frame:
// Angles and Position express the child's pose in parent coordinates.
type Transform struct {
	Angles   Vec    // Euler angles in radians, indexed by axis
	Position Vec    // child origin in parent coordinates
	Sequence string // Euler sequence; empty means SequenceZYX
}

// sequence returns the effective Euler sequence.
func (t Transform) sequence() string {
	if t.Sequence == "" {
		return SequenceZYX
	}
	return t.Sequence
}

// ToParent maps a point expressed in the child frame into parent coordinates:
// R·p + Position.
func (t Transform) ToParent(p Vec) Vec {
	return applyHomogeneous(t.parentMatrix(), []Vec{p})[0]
}

// ToChild maps a point expressed in the parent frame into child coordinates:
// R⁻¹·(p − Position). It is the exact inverse of ToParent:
// ToChild(ToParent(p)) == p up to floating point error.
func (t Transform) ToChild(p Vec) Vec {
	return applyHomogeneous(t.childMatrix(), []Vec{p})[0]
}

// ToParentAll maps a batch of child-frame points into parent coordinates.
// The rotation matrix is built once and applied to all points as columns of
// a single homogeneous matrix product.
func (t Transform) ToParentAll(ps []Vec) []Vec {
	return applyHomogeneous(t.parentMatrix(), ps)
}

// ToChildAll maps a batch of parent-frame points into child coordinates.
func (t Transform) ToChildAll(ps []Vec) []Vec {
	return applyHomogeneous(t.childMatrix(), ps)
}

// parentMatrix is T(Position)·R(Angles): rotate, then translate.
func (t Transform) parentMatrix() *mat.Dense {
	var m mat.Dense
	m.Mul(Translation(t.Position), Rotation(t.Angles, t.sequence()))
	return &m
}

// childMatrix is R(−Angles, reversed)·T(−Position): the inverse composition.
func (t Transform) childMatrix() *mat.Dense {
	var m mat.Dense
	m.Mul(Rotation(t.Angles.Scale(-1), reversed(t.sequence())), Translation(t.Position.Scale(-1)))
	return &m
}

// applyHomogeneous multiplies each point, lifted to a homogeneous column, by
// m and drops the homogeneous row. Points are packed as columns of a 4×n
// matrix so a batch costs one matrix product.
func applyHomogeneous(m *mat.Dense, ps []Vec) []Vec {
	n := len(ps)
	if n == 0 {
		return nil
	}
	cols := mat.NewDense(4, n, nil)
	for j, p := range ps {
		cols.Set(0, j, p[0])
		cols.Set(1, j, p[1])
		cols.Set(2, j, p[2])
		cols.Set(3, j, 1)
	}
	var out mat.Dense
	out.Mul(m, cols)
	res := make([]Vec, n)
	for j := range res {
		res[j] = Vec{out.At(0, j), out.At(1, j), out.At(2, j)}
	}
	return res
}

func identity4() *mat.Dense {
	m := mat.NewDense(4, 4, nil)
	for i := 0; i < 4; i++ {
		m.Set(i, i, 1)
	}
	return m
}

func axisIndex(axis rune) int {
	switch axis {
	case 'X', 'x':
		return 0
	case 'Y', 'y':
		return 1
	default:
		return 2
	}
}

// axisRotation builds the elementary 4×4 rotation about a single axis.
func axisRotation(axis rune, angle float64) *mat.Dense {
	c, s := math.Cos(angle), math.Sin(angle)
	m := identity4()
	switch axis {
	case 'X', 'x':
		m.Set(1, 1, c)
		m.Set(1, 2, -s)
		m.Set(2, 1, s)
		m.Set(2, 2, c)
	case 'Y', 'y':
		m.Set(0, 0, c)
		m.Set(0, 2, s)
		m.Set(2, 0, -s)
		m.Set(2, 2, c)
	case 'Z', 'z':
		m.Set(0, 0, c)
		m.Set(0, 1, -s)
		m.Set(1, 0, s)
		m.Set(1, 1, c)
	}
	return m
}
