package linkage

import (
	"math"

	"github.com/matzehuels/hardpoint/pkg/geom"
)

// placeArmFrame derives an A-arm's local frame from its pivot line and
// outboard ball joint, all expressed in axle coordinates. The frame origin is
// the apex: the ball joint's orthogonal projection onto the pivot line. The
// three Euler angles are solved sequentially, each from the frame state left
// by the previous assignment, so that the front pickup lands on the frame's
// +x axis and the ball joint lands in its x-y plane.
func placeArmFrame(pivot geom.Line, front, ballJoint geom.Vec) geom.Transform {
	tf := geom.Transform{Position: pivot.Project(ballJoint), Sequence: geom.SequenceZYX}

	// Yaw rotates the front pickup into the x-z plane.
	q := tf.ToChild(front)
	tf.Angles[2] = math.Atan2(q.Y(), q.X())

	// Pitch then drops it onto the x axis.
	q = tf.ToChild(front)
	tf.Angles[1] = -math.Atan2(q.Z(), q.X())

	// Roll rotates the ball joint into the x-y plane.
	b := tf.ToChild(ballJoint)
	tf.Angles[0] = math.Atan2(b.Z(), b.Y())

	return tf
}

// placeTieRodFrame derives the tie rod's local frame from its inboard pickup
// (the frame origin) and outboard pickup, axle coordinates. Yaw and pitch
// place the outer pickup on the frame's +x axis; the rod is axially symmetric
// so no roll is solved.
func placeTieRodFrame(inboard, outboard geom.Vec) geom.Transform {
	tf := geom.Transform{Position: inboard, Sequence: geom.SequenceZYX}

	q := tf.ToChild(outboard)
	tf.Angles[2] = math.Atan2(q.Y(), q.X())

	q = tf.ToChild(outboard)
	tf.Angles[1] = -math.Atan2(q.Z(), q.X())

	return tf
}
