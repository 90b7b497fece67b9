// Package frame implements the kinematic frame graph: a rooted tree of named
// coordinate frames, each owning a rigid transform relative to its parent and
// a table of named points of interest (PoIs).
//
// The graph is structurally always a tree, so it is stored as an explicit
// arena with integer frame indices and parent pointers rather than a general
// graph structure. A next-hop path table is precomputed at construction so
// that evaluating a point in another frame is a straight walk along the
// unique tree path, applying one rigid transform per hop.
//
// # Coordinate conventions
//
// Hops toward the root map child coordinates into parent coordinates
// (geom.Transform.ToParent); hops away from the root apply the destination
// frame's inverse map (geom.Transform.ToChild). Round-tripping any point
// between two frames recovers the original within floating tolerance.
package frame

import (
	"github.com/matzehuels/hardpoint/pkg/geom"
)

// DoF marks which of the six spatial freedoms a frame represents relative to
// its parent, ordered (x, y, z, roll, pitch, yaw). It is documentary only and
// is never evaluated by the solver.
type DoF [6]bool

// PointOfInterest is a named 3-D coordinate attached to a frame, expressed in
// that frame's local coordinates. Style is a plotting hint carried through for
// rendering; the solver ignores it.
type PointOfInterest struct {
	Key      string
	Title    string
	Position geom.Vec
	Style    string
}

// PointSeed declares a PoI in a frame descriptor. Position defaults to the
// frame origin.
type PointSeed struct {
	Key      string
	Title    string
	Style    string
	Position geom.Vec
}

// Descriptor declares a frame for graph construction.
type Descriptor struct {
	Key       string // unique short key, e.g. "W"
	Title     string // human title, e.g. "Wheel"
	Parent    string // parent frame key; empty for the root
	Transform geom.Transform
	DoF       DoF
	Points    []PointSeed
}

// Frame is a single coordinate frame in the graph. Frames are owned by their
// Graph and must not be shared across graphs.
type Frame struct {
	Key       string
	Title     string
	Transform geom.Transform
	DoF       DoF

	index    int
	parent   int // -1 for the root
	children []int

	points map[string]*PointOfInterest
	order  []string // PoI insertion order, for deterministic iteration
}

// newFrame builds a frame from its descriptor with all PoIs seeded.
func newFrame(d Descriptor, index, parent int) *Frame {
	f := &Frame{
		Key:       d.Key,
		Title:     d.Title,
		Transform: d.Transform,
		DoF:       d.DoF,
		index:     index,
		parent:    parent,
		points:    make(map[string]*PointOfInterest, len(d.Points)),
	}
	for _, s := range d.Points {
		f.AddPoint(PointOfInterest{Key: s.Key, Title: s.Title, Style: s.Style, Position: s.Position})
	}
	return f
}

// Point returns the PoI with the given key, or false when absent.
func (f *Frame) Point(key string) (*PointOfInterest, bool) {
	p, ok := f.points[key]
	return p, ok
}

// Points returns the frame's PoIs in insertion order.
func (f *Frame) Points() []*PointOfInterest {
	out := make([]*PointOfInterest, 0, len(f.order))
	for _, k := range f.order {
		out = append(out, f.points[k])
	}
	return out
}

// AddPoint inserts or replaces a PoI. Replacing keeps the original insertion
// position.
func (f *Frame) AddPoint(p PointOfInterest) {
	if _, exists := f.points[p.Key]; !exists {
		f.order = append(f.order, p.Key)
	}
	cp := p
	f.points[p.Key] = &cp
}

// RemovePoint deletes a PoI. Removing an absent key is a no-op; the solver
// uses this to discard transient construction points after their values have
// been re-expressed in a child frame.
func (f *Frame) RemovePoint(key string) {
	if _, exists := f.points[key]; !exists {
		return
	}
	delete(f.points, key)
	for i, k := range f.order {
		if k == key {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// PointRef identifies a point to evaluate: either a named PoI resolved in the
// source frame, or a literal coordinate already expressed in the source frame.
type PointRef struct {
	name    string
	literal geom.Vec
	isName  bool
}

// Named references a PoI by key in the source frame.
func Named(key string) PointRef { return PointRef{name: key, isName: true} }

// Literal references a raw coordinate expressed in the source frame.
func Literal(v geom.Vec) PointRef { return PointRef{literal: v} }

// BoundViolation describes a single out-of-range axis detected on an explicit
// point write. Violations are warnings: they never abort a solve.
type BoundViolation struct {
	Point    string
	Axis     int
	Min, Max float64
	Value    float64
}

// BoundChecker validates a point position against its design bounds. Bounds
// are expressed in the point's owning frame, so implementations must ignore
// writes into any other frame. Implementations return one violation per
// out-of-range axis and nil when the point has no bounds at all.
type BoundChecker interface {
	Check(point, frameKey string, pos geom.Vec) []BoundViolation
}
