package render

import (
	"encoding/json"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/linkage"
)

const (
	inch = 25.4
	deg  = math.Pi / 180
)

func testTarget() design.Target {
	return design.Target{
		Linkage:      design.LinkageDoubleWishbone,
		Axle:         design.AxleFront,
		Wheelbase:    1525,
		WeightDist:   50,
		CG:           [3]float64{0, 0, 8.5 * inch},
		Ride:         2 * inch,
		LoadedRadius: 7.85 * inch,
		Track:        1220,
		Toe:          0.5 * deg,
		Camber:       -1.6 * deg,
		CamberGain:   -1 * deg / inch,
		Caster:       3 * deg,
		CasterGain:   0.25 * deg / inch,
		KPI:          3 * deg,
		RollCenter:   15,
		PitchCenter:  10,
	}
}

func testBounds() design.Bounds {
	return design.Bounds{
		design.LowerArmFront: {{5 * inch, 5 * inch}, {8 * inch, 8.7 * inch}, {0.5 * inch, 1.5 * inch}},
		design.LowerArmRear:  {{-5 * inch, -5 * inch}, {0, 0}, {0.5 * inch, 1.5 * inch}},
		design.UpperArmFront: {{0, 0}, {8.7 * inch, 10 * inch}, {6 * inch, 8 * inch}},
		design.UpperArmRear:  {{0, 0}, {0, 0}, {6 * inch, 8 * inch}},
		design.TieRodInboard: {{2 * inch, 3 * inch}, {8.7 * inch, 8.7 * inch}, {2.5 * inch, 2.75 * inch}},
		design.LowerBall:     {{0, 0}, {-0.88 * inch, -0.88 * inch}, {-3.25 * inch, -2.7 * inch}},
		design.UpperBall:     {{0, 0}, {-1.75 * inch, -0.88 * inch}, {3 * inch, 3.5 * inch}},
		design.TieRodBall:    {{2.5 * inch, 2.85 * inch}, {-1.25 * inch, -0.88 * inch}, {-1.5 * inch, 0.5 * inch}},
	}
}

func solvedSystem(t *testing.T) *linkage.System {
	t.Helper()
	s, err := linkage.Build(testTarget(), testBounds(), nil)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if err := s.Space.SetUniformFraction(0.5); err != nil {
		t.Fatalf("SetUniformFraction() error: %v", err)
	}
	if err := linkage.GenerateLinkage(s); err != nil {
		t.Fatalf("GenerateLinkage() error: %v", err)
	}
	return s
}

func TestBuildReport(t *testing.T) {
	s := solvedSystem(t)

	rep, err := BuildReport(s)
	if err != nil {
		t.Fatalf("BuildReport() error: %v", err)
	}

	if rep.Linkage != string(design.LinkageDoubleWishbone) {
		t.Errorf("Linkage = %q, want %q", rep.Linkage, design.LinkageDoubleWishbone)
	}
	if rep.Axle != string(design.AxleFront) {
		t.Errorf("Axle = %q, want %q", rep.Axle, design.AxleFront)
	}
	if len(rep.Frames) != 8 {
		t.Fatalf("frame count = %d, want 8", len(rep.Frames))
	}
	if !sort.SliceIsSorted(rep.Frames, func(i, j int) bool { return rep.Frames[i].Key < rep.Frames[j].Key }) {
		t.Error("frames are not sorted by key")
	}

	// The ground frame's origin is the ground origin.
	origin, ok := rep.point(linkage.FrameIntermediate, linkage.PointOrigin)
	if !ok {
		t.Fatal("intermediate origin missing from report")
	}
	if origin != ([3]float64{}) {
		t.Errorf("intermediate origin = %v, want zero", origin)
	}

	// The lower ball joint must appear, and its ground position must agree
	// with a direct evaluation through the system.
	lb, ok := rep.point(linkage.FrameLowerArm, string(design.LowerBall))
	if !ok {
		t.Fatal("lower ball joint missing from report")
	}
	if lb[2] <= 0 {
		t.Errorf("lower ball joint ground height = %v, want above ground", lb[2])
	}
}

func TestBuildReportLocalVersusGround(t *testing.T) {
	s := solvedSystem(t)

	rep, err := BuildReport(s)
	if err != nil {
		t.Fatalf("BuildReport() error: %v", err)
	}

	for _, f := range rep.Frames {
		if f.Key != linkage.FrameIntermediate {
			continue
		}
		for _, p := range f.Points {
			if p.Local != p.Ground {
				t.Errorf("point %s: local %v != ground %v in the ground frame", p.Key, p.Local, p.Ground)
			}
		}
	}
}

func TestRenderJSON(t *testing.T) {
	s := solvedSystem(t)

	rep, err := BuildReport(s)
	if err != nil {
		t.Fatalf("BuildReport() error: %v", err)
	}

	data, err := RenderJSON(rep)
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out Report
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Linkage != rep.Linkage {
		t.Errorf("Linkage = %q, want %q", out.Linkage, rep.Linkage)
	}
	if len(out.Frames) != len(rep.Frames) {
		t.Errorf("frame count = %d, want %d", len(out.Frames), len(rep.Frames))
	}
}

func TestRenderElevationSVG(t *testing.T) {
	s := solvedSystem(t)

	rep, err := BuildReport(s)
	if err != nil {
		t.Fatalf("BuildReport() error: %v", err)
	}

	for _, view := range []Elevation{FrontElevation, SideElevation} {
		svg := string(RenderElevationSVG(rep, view))
		if !strings.HasPrefix(svg, "<svg") {
			t.Errorf("view %d: output does not start with <svg", view)
		}
		if !strings.Contains(svg, `class="arm"`) {
			t.Errorf("view %d: no arm links drawn", view)
		}
		if !strings.Contains(svg, `class="kingpin"`) {
			t.Errorf("view %d: no kingpin axis drawn", view)
		}
		if !strings.Contains(svg, "</svg>") {
			t.Errorf("view %d: unterminated document", view)
		}
	}
}

func TestRenderElevationSVGEmptyReport(t *testing.T) {
	svg := string(RenderElevationSVG(&Report{}, FrontElevation))
	if !strings.Contains(svg, "<svg") {
		t.Errorf("empty report output = %q, want a valid svg element", svg)
	}
}

func TestToDOT(t *testing.T) {
	s := solvedSystem(t)

	dot := ToDOT(s)
	if !strings.HasPrefix(dot, "digraph frames {") {
		t.Errorf("output does not start with digraph header")
	}
	for _, key := range []string{
		linkage.FrameIntermediate, linkage.FrameTire, linkage.FrameWheel,
		linkage.FrameBody, linkage.FrameAxle, linkage.FrameLowerArm,
		linkage.FrameUpperArm, linkage.FrameTieRod,
	} {
		if !strings.Contains(dot, "\""+key+"\"") {
			t.Errorf("frame %q missing from DOT output", key)
		}
	}
	if !strings.Contains(dot, `"X" -> "LA"`) {
		t.Error("axle to lower arm edge missing")
	}
	if strings.Contains(dot, `-> "I"`) {
		t.Error("root frame must not have an incoming edge")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg">content</svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.00 50.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("dimensions not rewritten: %s", out)
	}

	noBox := []byte(`<svg>no box</svg>`)
	if got := string(normalizeViewBox(noBox)); got != string(noBox) {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
