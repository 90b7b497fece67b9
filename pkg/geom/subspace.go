package geom

import "math"

// =============================================================================
// Line - 1D subspace through two points
// =============================================================================

// Line is an infinite line through two distinct points. The basis vector
// points from A to B and has unit length.
type Line struct {
	A, B  Vec
	Basis Vec
}

// LineThrough builds the line through a and b.
// Returns ErrCoincidentPoints when a == b.
func LineThrough(a, b Vec) (Line, error) {
	d := b.Sub(a)
	if d.Norm() == 0 {
		return Line{}, ErrCoincidentPoints
	}
	return Line{A: a, B: b, Basis: d.Unit()}, nil
}

// At evaluates the line at the point whose coordinate along the given axis
// equals query, interpolating (or extrapolating) between the two defining
// points. The line must not be perpendicular to the queried axis.
func (l Line) At(query float64, axis int) Vec {
	alpha := (query - l.A[axis]) / (l.B[axis] - l.A[axis])
	return Lerp(l.A, l.B, alpha)
}

// Project returns the orthogonal projection of p onto the line.
func (l Line) Project(p Vec) Vec {
	return l.A.Add(l.Basis.Scale(p.Sub(l.A).Dot(l.Basis)))
}

// Perp returns the component of p perpendicular to the line, i.e.
// p − Project(p).
func (l Line) Perp(p Vec) Vec {
	return p.Sub(l.Project(p))
}

// =============================================================================
// Plane - 2D subspace through three points
// =============================================================================

// Plane is a plane in 3-space defined by a point and a unit normal.
type Plane struct {
	Point  Vec
	Normal Vec
}

// collinearTol bounds the normal magnitude (relative to the spanning edges)
// below which three points are treated as collinear.
const collinearTol = 1e-12

// PlaneThrough fits the plane through three points. The normal is
// normalize(cross(A−B, A−C)). Returns ErrCollinearPoints when the points do
// not span a plane.
func PlaneThrough(a, b, c Vec) (Plane, error) {
	n := a.Sub(b).Cross(a.Sub(c))
	if n.Norm() <= collinearTol {
		return Plane{}, ErrCollinearPoints
	}
	return Plane{Point: a, Normal: n.Unit()}, nil
}

// Solve evaluates the plane for the coordinate along axis, given the two
// remaining coordinates u and v in ascending axis order. For axis 2 this is
// the height function z(x, y) = A.z − (n.x·(x−A.x) + n.y·(y−A.y)) / n.z.
// The plane must not be parallel to the solved axis (Normal[axis] != 0).
func (pl Plane) Solve(axis int, u, v float64) Vec {
	var out Vec
	rest := [2]int{}
	switch axis {
	case 0:
		rest = [2]int{1, 2}
	case 1:
		rest = [2]int{0, 2}
	default:
		rest = [2]int{0, 1}
	}
	out[rest[0]], out[rest[1]] = u, v

	num := pl.Normal[rest[0]]*(u-pl.Point[rest[0]]) + pl.Normal[rest[1]]*(v-pl.Point[rest[1]])
	out[axis] = pl.Point[axis] - num/pl.Normal[axis]
	return out
}

// HeightAt returns the plane's vertical coordinate at (x, y).
func (pl Plane) HeightAt(x, y float64) float64 {
	return pl.Solve(2, x, y)[2]
}

// Project returns the orthogonal projection of p onto the plane.
func (pl Plane) Project(p Vec) Vec {
	dist := pl.Normal.Dot(p) - pl.Normal.Dot(pl.Point)
	return p.Sub(pl.Normal.Scale(dist))
}

// Intersect computes the intersection line of two planes in closed form.
// The line is parametrized so that it advances one unit of the longitudinal
// coordinate per unit of parameter: At(x, 0) yields the intersection point
// with longitudinal coordinate x. Returns ErrParallelPlanes when the planes
// share a normal direction, and ErrCoincidentPoints never.
func (pl Plane) Intersect(other Plane) (Line, error) {
	n1, n2 := pl.Normal, other.Normal

	t := n1.Cross(n2)
	if t.Norm() <= collinearTol {
		return Line{}, ErrParallelPlanes
	}
	if math.Abs(t[0]) <= collinearTol {
		// Direction has no longitudinal component: the unit-advance
		// parametrization is undefined.
		return Line{}, ErrParallelPlanes
	}
	t = t.Scale(1 / t[0])

	d1 := n1.Dot(pl.Point)
	d2 := n2.Dot(other.Point)
	n12 := n1.Dot(n2)

	// Point on the line closest to the origin in the span of the normals,
	// then slid along the direction so its longitudinal coordinate is zero.
	p0 := n1.Scale(d1 - d2*n12).Add(n2.Scale(d2 - d1*n12)).Scale(1 / (1 - n12*n12))
	p0 = p0.Sub(t.Scale(p0[0]))

	return Line{A: p0, B: p0.Add(t), Basis: t.Unit()}, nil
}
