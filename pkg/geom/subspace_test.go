package geom

import (
	"errors"
	"math"
	"testing"
)

func TestLineThrough(t *testing.T) {
	l, err := LineThrough(Vec{0, 0, 0}, Vec{2, 0, 0})
	if err != nil {
		t.Fatalf("LineThrough() error = %v", err)
	}
	if want := (Vec{1, 0, 0}); !vecNear(l.Basis, want, tol) {
		t.Errorf("Basis = %v, want %v", l.Basis, want)
	}

	if _, err := LineThrough(Vec{1, 2, 3}, Vec{1, 2, 3}); !errors.Is(err, ErrCoincidentPoints) {
		t.Errorf("coincident points error = %v, want ErrCoincidentPoints", err)
	}
}

func TestLineAt(t *testing.T) {
	l, err := LineThrough(Vec{0, 0, 0}, Vec{2, 4, 6})
	if err != nil {
		t.Fatalf("LineThrough() error = %v", err)
	}

	tests := []struct {
		name  string
		query float64
		axis  int
		want  Vec
	}{
		{"Midpoint", 1, 0, Vec{1, 2, 3}},
		{"Endpoint", 2, 0, Vec{2, 4, 6}},
		{"Extrapolated", 4, 0, Vec{4, 8, 12}},
		{"LateralQuery", 2, 1, Vec{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.At(tt.query, tt.axis); !vecNear(got, tt.want, tol) {
				t.Errorf("At(%v, %d) = %v, want %v", tt.query, tt.axis, got, tt.want)
			}
		})
	}
}

func TestLineProject(t *testing.T) {
	l, _ := LineThrough(Vec{0, 0, 0}, Vec{1, 0, 0})

	got := l.Project(Vec{3, 4, 5})
	if want := (Vec{3, 0, 0}); !vecNear(got, want, tol) {
		t.Errorf("Project = %v, want %v", got, want)
	}
	perp := l.Perp(Vec{3, 4, 5})
	if want := (Vec{0, 4, 5}); !vecNear(perp, want, tol) {
		t.Errorf("Perp = %v, want %v", perp, want)
	}
	// The projection plus its perpendicular component recovers the point.
	if sum := got.Add(perp); !vecNear(sum, Vec{3, 4, 5}, tol) {
		t.Errorf("Project + Perp = %v, want original point", sum)
	}
}

func TestPlaneThroughExactAtDefiningPoints(t *testing.T) {
	a, b, c := Vec{0, 0, 1}, Vec{4, -2, 3}, Vec{-1, 5, 0.5}

	pl, err := PlaneThrough(a, b, c)
	if err != nil {
		t.Fatalf("PlaneThrough() error = %v", err)
	}
	for _, p := range []Vec{a, b, c} {
		if got := pl.HeightAt(p[0], p[1]); math.Abs(got-p[2]) > 1e-9 {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", p[0], p[1], got, p[2])
		}
	}
}

func TestPlaneThroughCollinear(t *testing.T) {
	if _, err := PlaneThrough(Vec{0, 0, 0}, Vec{1, 1, 1}, Vec{2, 2, 2}); !errors.Is(err, ErrCollinearPoints) {
		t.Errorf("collinear error = %v, want ErrCollinearPoints", err)
	}
}

func TestPlaneSolveAxes(t *testing.T) {
	// x + y + z = 3
	pl, err := PlaneThrough(Vec{3, 0, 0}, Vec{0, 3, 0}, Vec{0, 0, 3})
	if err != nil {
		t.Fatalf("PlaneThrough() error = %v", err)
	}

	tests := []struct {
		name string
		axis int
		u, v float64
		want Vec
	}{
		{"SolveZ", 2, 1, 1, Vec{1, 1, 1}},
		{"SolveY", 1, 2, 0, Vec{2, 1, 0}},
		{"SolveX", 0, -1, 1, Vec{3, -1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pl.Solve(tt.axis, tt.u, tt.v); !vecNear(got, tt.want, 1e-9) {
				t.Errorf("Solve(%d, %v, %v) = %v, want %v", tt.axis, tt.u, tt.v, got, tt.want)
			}
		})
	}
}

func TestPlaneProject(t *testing.T) {
	pl, _ := PlaneThrough(Vec{0, 0, 2}, Vec{1, 0, 2}, Vec{0, 1, 2}) // z = 2
	got := pl.Project(Vec{5, 7, 9})
	if want := (Vec{5, 7, 2}); !vecNear(got, want, tol) {
		t.Errorf("Project = %v, want %v", got, want)
	}
}

func TestPlaneIntersect(t *testing.T) {
	// z = 2 meets y = x: line (t, t, 2).
	pl1, _ := PlaneThrough(Vec{0, 0, 2}, Vec{1, 0, 2}, Vec{0, 1, 2})
	pl2, _ := PlaneThrough(Vec{0, 0, 0}, Vec{1, 1, 0}, Vec{0, 0, 1})

	line, err := pl1.Intersect(pl2)
	if err != nil {
		t.Fatalf("Intersect() error = %v", err)
	}
	for _, x := range []float64{-2, 0, 3.5} {
		got := line.At(x, 0)
		want := Vec{x, x, 2}
		if !vecNear(got, want, 1e-9) {
			t.Errorf("line.At(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestPlaneIntersectUnitAdvance(t *testing.T) {
	pl1, _ := PlaneThrough(Vec{0, 0, 1}, Vec{3, 1, 2}, Vec{-1, 2, 0})
	pl2, _ := PlaneThrough(Vec{1, 1, 1}, Vec{2, -1, 3}, Vec{0, 4, -2})

	line, err := pl1.Intersect(pl2)
	if err != nil {
		t.Fatalf("Intersect() error = %v", err)
	}
	// Parametrization advances one longitudinal unit between the defining
	// points, starting from x = 0.
	if math.Abs(line.A[0]) > tol {
		t.Errorf("line.A[0] = %v, want 0", line.A[0])
	}
	if step := line.B[0] - line.A[0]; math.Abs(step-1) > tol {
		t.Errorf("longitudinal step = %v, want 1", step)
	}
	// Both endpoints lie on both planes.
	for _, p := range []Vec{line.A, line.B} {
		for i, pl := range []Plane{pl1, pl2} {
			if d := math.Abs(pl.Normal.Dot(p.Sub(pl.Point))); d > 1e-9 {
				t.Errorf("point %v off plane %d by %v", p, i, d)
			}
		}
	}
}

func TestPlaneIntersectParallel(t *testing.T) {
	pl1, _ := PlaneThrough(Vec{0, 0, 0}, Vec{1, 0, 0}, Vec{0, 1, 0})
	pl2, _ := PlaneThrough(Vec{0, 0, 5}, Vec{1, 0, 5}, Vec{0, 1, 5})
	if _, err := pl1.Intersect(pl2); !errors.Is(err, ErrParallelPlanes) {
		t.Errorf("parallel error = %v, want ErrParallelPlanes", err)
	}
}

func TestLerp(t *testing.T) {
	a, b := Vec{0, 0, 0}, Vec{2, 4, -6}
	if got := Lerp(a, b, 0); !vecNear(got, a, tol) {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); !vecNear(got, b, tol) {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	if got, want := Lerp(a, b, 0.5), (Vec{1, 2, -3}); !vecNear(got, want, tol) {
		t.Errorf("Lerp(0.5) = %v, want %v", got, want)
	}
}
