// Package geom provides the rigid-body transform primitives and linear
// subspace helpers used by the kinematic frame graph and the linkage solver.
//
// Coordinates follow the vehicle convention used throughout hardpoint:
// index 0 is longitudinal (x, positive forward), index 1 is lateral
// (y, positive left), index 2 is vertical (z, positive up). Angles are
// radians.
//
// Transforms are homogeneous 4×4 matrices built on gonum. A Transform maps
// between a child frame and its parent frame; chained hops across a frame
// tree are composed by the frame package.
package geom

import (
	"errors"
	"math"
)

// Sentinel errors for degenerate geometric inputs.
var (
	// ErrCollinearPoints is returned by PlaneThrough when the three points
	// do not span a plane.
	ErrCollinearPoints = errors.New("points are collinear")

	// ErrCoincidentPoints is returned by LineThrough when both points are
	// identical and no direction can be derived.
	ErrCoincidentPoints = errors.New("points are coincident")

	// ErrParallelPlanes is returned by Intersect when the planes have no
	// unique intersection line.
	ErrParallelPlanes = errors.New("planes are parallel")
)

// Vec is a 3-vector in (longitudinal, lateral, vertical) order.
type Vec [3]float64

// X returns the longitudinal component.
func (v Vec) X() float64 { return v[0] }

// Y returns the lateral component.
func (v Vec) Y() float64 { return v[1] }

// Z returns the vertical component.
func (v Vec) Z() float64 { return v[2] }

// Add returns v + w.
func (v Vec) Add(w Vec) Vec { return Vec{v[0] + w[0], v[1] + w[1], v[2] + w[2]} }

// Sub returns v − w.
func (v Vec) Sub(w Vec) Vec { return Vec{v[0] - w[0], v[1] - w[1], v[2] - w[2]} }

// Scale returns s·v.
func (v Vec) Scale(s float64) Vec { return Vec{s * v[0], s * v[1], s * v[2]} }

// Dot returns the scalar product v·w.
func (v Vec) Dot(w Vec) float64 { return v[0]*w[0] + v[1]*w[1] + v[2]*w[2] }

// Cross returns the vector product v×w.
func (v Vec) Cross(w Vec) Vec {
	return Vec{
		v[1]*w[2] - v[2]*w[1],
		v[2]*w[0] - v[0]*w[2],
		v[0]*w[1] - v[1]*w[0],
	}
}

// Norm returns the Euclidean length of v.
func (v Vec) Norm() float64 { return math.Sqrt(v.Dot(v)) }

// Unit returns v scaled to unit length. The zero vector is returned unchanged.
func (v Vec) Unit() Vec {
	n := v.Norm()
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// Lerp linearly interpolates between a and b: a·(1−alpha) + b·alpha.
func Lerp(a, b Vec, alpha float64) Vec {
	return a.Scale(1 - alpha).Add(b.Scale(alpha))
}
