// Package design describes the double-wishbone design space: vehicle-level
// targets, per-point coordinate bounds, and normalized samples drawn from
// those bounds.
//
// Pickup points are identified by an enumerated PointID with a static lookup
// table encoding each point's owning frame, display title, sampled-axis mask,
// and bound-inheritance donors. Routing decisions are made through this table,
// never by inspecting the identifier's characters at runtime.
package design

// Axis indexes the three coordinate axes of the design space.
type Axis int

// Axes in the fixed vehicle coordinate convention.
const (
	Longitudinal Axis = iota
	Lateral
	Vertical
)

// String returns the axis name used in warnings and reports.
func (a Axis) String() string {
	switch a {
	case Longitudinal:
		return "longitudinal"
	case Lateral:
		return "lateral"
	default:
		return "vertical"
	}
}

// PointID identifies a bounded linkage pickup point.
type PointID string

// Linkage pickup points. Inboard points attach to the axle frame, outboard
// points to the wheel frame.
const (
	LowerArmFront PointID = "LAF" // lower A-arm front pickup (axle)
	LowerArmRear  PointID = "LAR" // lower A-arm rear pickup (axle)
	UpperArmFront PointID = "UAF" // upper A-arm front pickup (axle)
	UpperArmRear  PointID = "UAR" // upper A-arm rear pickup (axle)
	TieRodInboard PointID = "TA"  // tie rod inboard pickup (axle)
	LowerBall     PointID = "LB"  // lower ball joint (wheel)
	UpperBall     PointID = "UB"  // upper ball joint (wheel)
	TieRodBall    PointID = "TB"  // tie rod outboard pickup (wheel)
)

// LinkagePoints lists all pickup points in resolution order. Order matters:
// inheritance donors resolve before their recipients.
var LinkagePoints = []PointID{
	LowerArmFront, LowerArmRear, UpperArmFront, UpperArmRear, TieRodInboard,
	LowerBall, UpperBall, TieRodBall,
}

// Inheritance declares that a point's bound range and resolved position on
// one axis are copied from a donor point when the point's own bound range on
// that axis is degenerate (both bound values zero).
type Inheritance struct {
	Axis  Axis
	Donor PointID
}

// pointSpec is the static description of one pickup point.
type pointSpec struct {
	Frame   string // owning frame key
	Title   string
	Sampled [3]bool // axes drawn from bounds; false axes are auto-calculated
	Inherit []Inheritance
}

// pointTable is the single source of truth for point routing. The sampled
// masks and inheritance pairs encode the double-wishbone design rules:
// inboard verticals are solved from the instant-center planes, upper-arm
// longitudinals and the rear lateral default to their paired lower/front
// points.
var pointTable = map[PointID]pointSpec{
	LowerArmFront: {Frame: "X", Title: "Lower A-Arm Front Pickup", Sampled: [3]bool{true, true, false}},
	LowerArmRear: {Frame: "X", Title: "Lower A-Arm Rear Pickup", Sampled: [3]bool{true, true, false},
		Inherit: []Inheritance{{Axis: Lateral, Donor: LowerArmFront}}},
	UpperArmFront: {Frame: "X", Title: "Upper A-Arm Front Pickup", Sampled: [3]bool{true, false, false},
		Inherit: []Inheritance{{Axis: Longitudinal, Donor: LowerArmFront}}},
	UpperArmRear: {Frame: "X", Title: "Upper A-Arm Rear Pickup", Sampled: [3]bool{true, false, false},
		Inherit: []Inheritance{
			{Axis: Longitudinal, Donor: LowerArmRear},
			{Axis: Lateral, Donor: UpperArmFront},
		}},
	TieRodInboard: {Frame: "X", Title: "Tie Rod Pickup", Sampled: [3]bool{true, true, false}},
	LowerBall:     {Frame: "W", Title: "Lower Pickup", Sampled: [3]bool{true, true, true}},
	UpperBall:     {Frame: "W", Title: "Upper Pickup", Sampled: [3]bool{true, false, true}},
	TieRodBall:    {Frame: "W", Title: "Tie Rod Pickup", Sampled: [3]bool{true, true, true}},
}

// FrameOf returns the key of the frame owning the point ("X" for inboard,
// "W" for outboard).
func FrameOf(p PointID) string { return pointTable[p].Frame }

// TitleOf returns the point's display title.
func TitleOf(p PointID) string { return pointTable[p].Title }

// SampledAxes returns the point's sampled-axis mask. Axes outside the mask
// are auto-calculated by the solver and must keep a zero sample fraction.
func SampledAxes(p PointID) [3]bool { return pointTable[p].Sampled }

// InheritanceOf returns the point's bound-inheritance rules, or nil.
func InheritanceOf(p PointID) []Inheritance { return pointTable[p].Inherit }

// Known reports whether p is a linkage pickup point.
func Known(p PointID) bool {
	_, ok := pointTable[p]
	return ok
}
