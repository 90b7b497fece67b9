package linkage

import (
	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/frame"
	"github.com/matzehuels/hardpoint/pkg/geom"
)

// Frame keys of the double-wishbone topology.
const (
	FrameIntermediate = "I"  // ground-fixed root
	FrameTire         = "T"  // tire contact patch
	FrameWheel        = "W"  // wheel center
	FrameBody         = "B"  // sprung body
	FrameAxle         = "X"  // axle, carries the inboard pickups
	FrameLowerArm     = "LA" // lower A-arm pivot frame
	FrameUpperArm     = "UA" // upper A-arm pivot frame
	FrameTieRod       = "TR" // tie rod pivot frame
)

// Point keys that are not design pickups.
const (
	PointOrigin      = "O"
	PointXAxis       = "E1"
	PointYAxis       = "E2"
	PointZAxis       = "E3"
	PointRollCenter  = "RC"
	PointFrontCenter = "FC"
	PointPitchCenter = "PC"
	PointSideCenter  = "SC"
)

// axisMarkerLength is the local offset of the E1/E2/E3 axis marker points,
// millimetres. They exist for rendering frame orientations and play no part
// in the solve.
const axisMarkerLength = 25

// framePoints returns the origin and axis marker PoIs every frame carries.
func framePoints() []frame.PointSeed {
	return []frame.PointSeed{
		{Key: PointOrigin, Title: "Origin", Style: "k."},
		{Key: PointXAxis, Title: "x-Axis", Style: "k.", Position: geom.Vec{axisMarkerLength, 0, 0}},
		{Key: PointYAxis, Title: "y-Axis", Style: "k.", Position: geom.Vec{0, axisMarkerLength, 0}},
		{Key: PointZAxis, Title: "z-Axis", Style: "k.", Position: geom.Vec{0, 0, axisMarkerLength}},
	}
}

// zyx returns an identity transform with the solver's rotation sequence.
func zyx() geom.Transform {
	return geom.Transform{Sequence: geom.SequenceZYX}
}

// descriptors declares the double-wishbone frame tree. Every transform starts
// at identity; the solver fills them in during generation.
//
//	I ── T ── W
//	└─ B ── X ── LA
//	             UA
//	             TR
func descriptors() []frame.Descriptor {
	return []frame.Descriptor{
		{
			Key: FrameIntermediate, Title: "Intermediate", Transform: zyx(),
			Points: append(framePoints(),
				frame.PointSeed{Key: PointRollCenter, Title: "Roll Center", Style: "kx"},
				frame.PointSeed{Key: PointFrontCenter, Title: "Front Instant Center", Style: "k*"},
				frame.PointSeed{Key: PointPitchCenter, Title: "Pitch Center", Style: "kx"},
				frame.PointSeed{Key: PointSideCenter, Title: "Side Instant Center", Style: "k*"},
			),
		},
		{
			Key: FrameTire, Title: "Tire", Parent: FrameIntermediate, Transform: zyx(),
			DoF:    frame.DoF{true, true, false, true, false, true},
			Points: framePoints(),
		},
		{
			Key: FrameWheel, Title: "Wheel", Parent: FrameTire, Transform: zyx(),
			DoF: frame.DoF{false, false, false, false, true, false},
			Points: append(framePoints(),
				pickupSeed(design.LowerBall),
				pickupSeed(design.UpperBall),
				pickupSeed(design.TieRodBall),
			),
		},
		{
			Key: FrameBody, Title: "Body", Parent: FrameIntermediate, Transform: zyx(),
			DoF:    frame.DoF{false, false, true, true, true, false},
			Points: framePoints(),
		},
		{
			Key: FrameAxle, Title: "Axle", Parent: FrameBody, Transform: zyx(),
			Points: append(framePoints(),
				pickupSeed(design.LowerArmFront),
				pickupSeed(design.LowerArmRear),
				pickupSeed(design.UpperArmFront),
				pickupSeed(design.UpperArmRear),
				pickupSeed(design.TieRodInboard),
			),
		},
		{
			Key: FrameLowerArm, Title: "Lower A-Arm", Parent: FrameAxle, Transform: zyx(),
			DoF: frame.DoF{false, false, false, true, false, false},
			Points: append(framePoints(),
				frame.PointSeed{Key: string(design.LowerArmFront), Title: "Front Pickup", Style: "ko"},
				frame.PointSeed{Key: string(design.LowerArmRear), Title: "Rear Pickup", Style: "ko"},
				frame.PointSeed{Key: string(design.LowerBall), Title: "Apex", Style: "ko"},
			),
		},
		{
			Key: FrameUpperArm, Title: "Upper A-Arm", Parent: FrameAxle, Transform: zyx(),
			DoF: frame.DoF{false, false, false, true, false, false},
			Points: append(framePoints(),
				frame.PointSeed{Key: string(design.UpperArmFront), Title: "Front Pickup", Style: "ko"},
				frame.PointSeed{Key: string(design.UpperArmRear), Title: "Rear Pickup", Style: "ko"},
				frame.PointSeed{Key: string(design.UpperBall), Title: "Apex", Style: "ko"},
			),
		},
		{
			Key: FrameTieRod, Title: "Tie Rod", Parent: FrameAxle, Transform: zyx(),
			DoF: frame.DoF{false, false, false, true, false, false},
			Points: append(framePoints(),
				frame.PointSeed{Key: string(design.TieRodBall), Title: "Outer Pickup", Style: "ko"},
			),
		},
	}
}

// pickupSeed seeds a design pickup point at the owning frame's origin.
func pickupSeed(id design.PointID) frame.PointSeed {
	return frame.PointSeed{Key: string(id), Title: design.TitleOf(id), Style: "ks"}
}
