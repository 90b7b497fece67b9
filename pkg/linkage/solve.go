package linkage

import (
	"math"
	"time"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/errors"
	"github.com/matzehuels/hardpoint/pkg/frame"
	"github.com/matzehuels/hardpoint/pkg/geom"
	"github.com/matzehuels/hardpoint/pkg/observability"
)

// stage is one ordered step of the linkage solve. Stages communicate only
// through the system state: each reads frames and points placed by earlier
// stages, so the order below is load-bearing.
type stage struct {
	name string
	run  func(*System) error
}

var stages = []stage{
	{"static-placement", stageStaticPlacement},
	{"sample-pickups", stageSamplePickups},
	{"instant-centers", stageInstantCenters},
	{"kingpin-inclination", stageKingpinInclination},
	{"inboard-heights", stageInboardHeights},
	{"upper-arm-inboard", stageUpperArmInboard},
	{"arm-frames", stageArmFrames},
	{"tie-rod-frame", stageTieRodFrame},
	{"cleanup", stageCleanup},
}

// GenerateLinkage runs the full solve, populating every frame transform and
// hardpoint of the system in place. Structural failures (missing frames or
// points, unimplemented paths) abort the solve; bound violations surface as
// warnings through the observability hooks and never abort.
func GenerateLinkage(s *System) error {
	for _, st := range stages {
		hooks := observability.Solver()
		hooks.OnStageStart(st.name)
		start := time.Now()
		err := st.run(s)
		hooks.OnStageComplete(st.name, time.Since(start), err)
		if err != nil {
			return errors.Wrap(errors.GetCode(err), err, "solver stage %q", st.name)
		}
	}
	s.solved = true
	return nil
}

// stageStaticPlacement fills in the frame transforms that follow directly
// from the vehicle targets: tire and axle longitudinal station from wheelbase
// and weight distribution, tire attitude from camber and toe, wheel offset
// from the loaded radius, body height and rake.
func stageStaticPlacement(s *System) error {
	t := s.Target

	var station float64
	switch t.Axle {
	case design.AxleFront:
		station = t.Wheelbase * (1 - t.WeightDist/100)
	case design.AxleRear:
		station = -t.Wheelbase * t.WeightDist / 100
	default:
		return errors.New(errors.ErrCodeInvalidDesign, "unknown axle position %q", t.Axle)
	}

	tire, err := s.Graph.Frame(FrameTire)
	if err != nil {
		return err
	}
	tire.Transform.Position[0] = station
	tire.Transform.Position[1] = t.Track / 2
	tire.Transform.Angles[0] = -t.Camber
	tire.Transform.Angles[2] = t.Toe

	wheel, err := s.Graph.Frame(FrameWheel)
	if err != nil {
		return err
	}
	wheel.Transform.Position[2] = t.LoadedRadius / math.Sin(math.Pi/2-t.Camber)
	wheel.Transform.Angles[1] = -t.Caster

	body, err := s.Graph.Frame(FrameBody)
	if err != nil {
		return err
	}
	body.Transform.Position[2] = t.CG[2]
	body.Transform.Angles[1] = t.Rake

	axle, err := s.Graph.Frame(FrameAxle)
	if err != nil {
		return err
	}
	axle.Transform.Position[0] = station
	axle.Transform.Position[2] = t.Ride - t.CG[2]

	return nil
}

// stageSamplePickups draws every design pickup from the sampled design
// space, inheritance coincidence included, and writes it into its owning
// frame. Sampled positions are in bounds by construction.
func stageSamplePickups(s *System) error {
	for id, pos := range s.Space.Resolve() {
		if _, err := s.Graph.SetPoint(string(id), design.FrameOf(id), pos, ""); err != nil {
			return err
		}
	}
	return nil
}

// stageInstantCenters places the roll and pitch centers from the target
// height ratios and solves the front-view and side-view instant centers from
// the jacking-line and swing-arm-circle intersection.
func stageInstantCenters(s *System) error {
	t := s.Target

	tire, err := s.Graph.Frame(FrameTire)
	if err != nil {
		return err
	}
	station := tire.Transform.Position[0]

	rollHeight := t.CG[2] * t.RollCenter / 100
	pitchHeight := t.CG[2] * t.PitchCenter / 100

	if _, err := s.Graph.SetPoint(PointRollCenter, FrameIntermediate,
		geom.Vec{station, 0, rollHeight}, ""); err != nil {
		return err
	}
	if _, err := s.Graph.SetPoint(PointPitchCenter, FrameIntermediate,
		geom.Vec{0, t.Track / 2, pitchHeight}, ""); err != nil {
		return err
	}

	// Front view: lateral contact-patch offset is half the track.
	lat, height, err := instantCenter(t.Track/2, rollHeight, swingArmLength(t.CamberGain), t.LoadedRadius)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "front view instant center")
	}
	if _, err := s.Graph.SetPoint(PointFrontCenter, FrameIntermediate,
		geom.Vec{station, lat, height}, ""); err != nil {
		return err
	}

	// Side view: longitudinal contact-patch offset is the axle station.
	long, height, err := instantCenter(station, pitchHeight, swingArmLength(t.CasterGain), t.LoadedRadius)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "side view instant center")
	}
	if _, err := s.Graph.SetPoint(PointSideCenter, FrameIntermediate,
		geom.Vec{long, t.Track / 2, height}, ""); err != nil {
		return err
	}

	return nil
}

// stageKingpinInclination recomputes the upper ball joint's lateral position
// so the kingpin axis from the lower ball joint meets the target inclination
// angle with vertical. Only the front-axle placement is defined; the
// rear-axle variant driven by the mechanical scrub target has no agreed
// geometry and fails rather than guess.
func stageKingpinInclination(s *System) error {
	if s.Target.Axle != design.AxleFront {
		return errors.New(errors.ErrCodeNotImplemented,
			"rear axle upper ball joint placement from scrub target is not implemented")
	}

	lb, err := s.Graph.EvaluatePoint(frame.Named(string(design.LowerBall)), FrameWheel, FrameWheel)
	if err != nil {
		return err
	}
	ub, err := s.Graph.EvaluatePoint(frame.Named(string(design.UpperBall)), FrameWheel, FrameWheel)
	if err != nil {
		return err
	}

	ub[1] = lb[1] - (ub[2]-lb[2])*math.Tan(s.Target.KPI)
	_, err = s.Graph.SetPoint(string(design.UpperBall), FrameWheel, ub, "")
	return err
}

// axleViewpoints gathers the solved instant centers and outboard ball joints
// re-expressed in axle coordinates, where all inboard placement happens.
type axleViewpoints struct {
	frontCenter geom.Vec
	sideCenter  geom.Vec
	lowerBall   geom.Vec
	upperBall   geom.Vec
	tieRodBall  geom.Vec
}

func (s *System) viewpoints() (axleViewpoints, error) {
	var v axleViewpoints
	var err error
	if v.frontCenter, err = s.Graph.EvaluatePoint(frame.Named(PointFrontCenter), FrameIntermediate, FrameAxle); err != nil {
		return v, err
	}
	if v.sideCenter, err = s.Graph.EvaluatePoint(frame.Named(PointSideCenter), FrameIntermediate, FrameAxle); err != nil {
		return v, err
	}
	if v.lowerBall, err = s.Graph.EvaluatePoint(frame.Named(string(design.LowerBall)), FrameWheel, FrameAxle); err != nil {
		return v, err
	}
	if v.upperBall, err = s.Graph.EvaluatePoint(frame.Named(string(design.UpperBall)), FrameWheel, FrameAxle); err != nil {
		return v, err
	}
	v.tieRodBall, err = s.Graph.EvaluatePoint(frame.Named(string(design.TieRodBall)), FrameWheel, FrameAxle)
	return v, err
}

// axlePoint reads a pickup's current axle-local position.
func (s *System) axlePoint(id design.PointID) (geom.Vec, error) {
	return s.Graph.EvaluatePoint(frame.Named(string(id)), FrameAxle, FrameAxle)
}

// stageInboardHeights lifts the tie-rod inboard pickup and the lower-arm
// pickups onto their kinematic planes: each plane passes through the
// relevant outboard ball joint and both instant centers, and the pickup's
// sampled (x, y) slides vertically onto it.
func stageInboardHeights(s *System) error {
	v, err := s.viewpoints()
	if err != nil {
		return err
	}

	place := func(pl geom.Plane, ids ...design.PointID) error {
		for _, id := range ids {
			p, err := s.axlePoint(id)
			if err != nil {
				return err
			}
			p[2] = pl.HeightAt(p[0], p[1])
			if _, err := s.Graph.SetPoint(string(id), FrameAxle, p, ""); err != nil {
				return err
			}
		}
		return nil
	}

	tiePlane, err := geom.PlaneThrough(v.tieRodBall, v.frontCenter, v.sideCenter)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "tie rod plane")
	}
	if err := place(tiePlane, design.TieRodInboard); err != nil {
		return err
	}

	lowerPlane, err := geom.PlaneThrough(v.lowerBall, v.frontCenter, v.sideCenter)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "lower arm plane")
	}
	return place(lowerPlane, design.LowerArmFront, design.LowerArmRear)
}

// inboardPlane fits the plane spanned by the tie-rod inboard pickup and the
// two lower-arm pickups, axle coordinates. Both upper-arm placement and the
// arm pivot lines intersect against it.
func (s *System) inboardPlane() (geom.Plane, error) {
	ta, err := s.axlePoint(design.TieRodInboard)
	if err != nil {
		return geom.Plane{}, err
	}
	laf, err := s.axlePoint(design.LowerArmFront)
	if err != nil {
		return geom.Plane{}, err
	}
	lar, err := s.axlePoint(design.LowerArmRear)
	if err != nil {
		return geom.Plane{}, err
	}
	pl, err := geom.PlaneThrough(ta, laf, lar)
	if err != nil {
		return geom.Plane{}, errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "inboard pickup plane")
	}
	return pl, nil
}

// stageUpperArmInboard solves the upper-arm pickups' lateral and vertical
// coordinates: the upper kinematic plane (upper ball joint plus instant
// centers) cut with the inboard pickup plane yields the upper pivot line,
// and each pickup's sampled longitudinal station selects its point on it.
func stageUpperArmInboard(s *System) error {
	v, err := s.viewpoints()
	if err != nil {
		return err
	}

	upperPlane, err := geom.PlaneThrough(v.upperBall, v.frontCenter, v.sideCenter)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "upper arm plane")
	}
	inboard, err := s.inboardPlane()
	if err != nil {
		return err
	}
	pivot, err := upperPlane.Intersect(inboard)
	if err != nil {
		return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "upper pivot line")
	}

	for _, id := range []design.PointID{design.UpperArmFront, design.UpperArmRear} {
		p, err := s.axlePoint(id)
		if err != nil {
			return err
		}
		if _, err := s.Graph.SetPoint(string(id), FrameAxle, pivot.At(p[0], 0), ""); err != nil {
			return err
		}
	}
	return nil
}

// stageArmFrames derives the lower and upper A-arm local frames from their
// pivot lines and records the pickups and ball joint in arm coordinates.
func stageArmFrames(s *System) error {
	v, err := s.viewpoints()
	if err != nil {
		return err
	}
	inboard, err := s.inboardPlane()
	if err != nil {
		return err
	}

	arms := []struct {
		key         string
		ballJoint   geom.Vec
		ballKey     design.PointID
		front, rear design.PointID
	}{
		{FrameLowerArm, v.lowerBall, design.LowerBall, design.LowerArmFront, design.LowerArmRear},
		{FrameUpperArm, v.upperBall, design.UpperBall, design.UpperArmFront, design.UpperArmRear},
	}
	for _, arm := range arms {
		kinematic, err := geom.PlaneThrough(arm.ballJoint, v.frontCenter, v.sideCenter)
		if err != nil {
			return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "%s kinematic plane", arm.key)
		}
		pivot, err := kinematic.Intersect(inboard)
		if err != nil {
			return errors.Wrap(errors.ErrCodeDegenerateGeometry, err, "%s pivot line", arm.key)
		}

		front, err := s.axlePoint(arm.front)
		if err != nil {
			return err
		}
		armFrame, err := s.Graph.Frame(arm.key)
		if err != nil {
			return err
		}
		armFrame.Transform = placeArmFrame(pivot, front, arm.ballJoint)

		for _, id := range []design.PointID{arm.front, arm.rear} {
			p, err := s.axlePoint(id)
			if err != nil {
				return err
			}
			if _, err := s.Graph.SetPoint(string(id), arm.key, p, FrameAxle); err != nil {
				return err
			}
		}
		if _, err := s.Graph.SetPoint(string(arm.ballKey), arm.key, arm.ballJoint, FrameAxle); err != nil {
			return err
		}
	}
	return nil
}

// stageTieRodFrame places the tie rod frame on the inboard pickup, aimed at
// the outer ball joint, and records the outer pickup in rod coordinates.
func stageTieRodFrame(s *System) error {
	ta, err := s.axlePoint(design.TieRodInboard)
	if err != nil {
		return err
	}
	tb, err := s.Graph.EvaluatePoint(frame.Named(string(design.TieRodBall)), FrameWheel, FrameAxle)
	if err != nil {
		return err
	}

	rod, err := s.Graph.Frame(FrameTieRod)
	if err != nil {
		return err
	}
	rod.Transform = placeTieRodFrame(ta, tb)

	_, err = s.Graph.SetPoint(string(design.TieRodBall), FrameTieRod, tb, FrameAxle)
	return err
}

// stageCleanup drops the axle-frame copies of the pickups now owned by the
// arm and tie-rod frames. The canonical values live in the child frames; the
// axle copies are construction scaffolding.
func stageCleanup(s *System) error {
	axle, err := s.Graph.Frame(FrameAxle)
	if err != nil {
		return err
	}
	for _, id := range []design.PointID{
		design.LowerArmFront, design.LowerArmRear,
		design.UpperArmFront, design.UpperArmRear,
		design.TieRodInboard,
	} {
		axle.RemovePoint(string(id))
	}
	return nil
}
