package render

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/linkage"
)

// Elevation selects the 2-D projection of an elevation drawing.
type Elevation int

// Elevation views.
const (
	// FrontElevation projects onto the lateral-vertical plane.
	FrontElevation Elevation = iota
	// SideElevation projects onto the longitudinal-vertical plane.
	SideElevation
)

// svgMargin is the blank border around the drawing, viewport units.
const svgMargin = 40.0

// svgWidth is the fixed viewport width; height follows the aspect ratio.
const svgWidth = 800.0

// segment is one drawn link between two report points.
type segment struct {
	fromFrame, fromKey string
	toFrame, toKey     string
	class              string
}

// linkSegments lists the physical links of the double-wishbone layout.
func linkSegments() []segment {
	return []segment{
		{linkage.FrameLowerArm, string(design.LowerArmFront), linkage.FrameLowerArm, string(design.LowerBall), "arm"},
		{linkage.FrameLowerArm, string(design.LowerArmRear), linkage.FrameLowerArm, string(design.LowerBall), "arm"},
		{linkage.FrameUpperArm, string(design.UpperArmFront), linkage.FrameUpperArm, string(design.UpperBall), "arm"},
		{linkage.FrameUpperArm, string(design.UpperArmRear), linkage.FrameUpperArm, string(design.UpperBall), "arm"},
		{linkage.FrameTieRod, linkage.PointOrigin, linkage.FrameTieRod, string(design.TieRodBall), "rod"},
		{linkage.FrameLowerArm, string(design.LowerBall), linkage.FrameUpperArm, string(design.UpperBall), "kingpin"},
	}
}

// markerPoints lists the reference points drawn as markers.
func markerPoints() []struct{ frame, key string } {
	return []struct{ frame, key string }{
		{linkage.FrameIntermediate, linkage.PointRollCenter},
		{linkage.FrameIntermediate, linkage.PointPitchCenter},
		{linkage.FrameTire, linkage.PointOrigin},
		{linkage.FrameWheel, linkage.PointOrigin},
	}
}

// RenderElevationSVG draws the solved linkage projected onto one elevation
// plane. The drawing is built from ground coordinates, z up.
func RenderElevationSVG(r *Report, view Elevation) []byte {
	proj := projector(view)

	// Bounding box over everything that will be drawn.
	minU, minV := math.Inf(1), math.Inf(1)
	maxU, maxV := math.Inf(-1), math.Inf(-1)
	grow := func(p [3]float64) {
		u, v := proj(p)
		minU, maxU = math.Min(minU, u), math.Max(maxU, u)
		minV, maxV = math.Min(minV, v), math.Max(maxV, v)
	}
	for _, seg := range linkSegments() {
		if p, ok := r.point(seg.fromFrame, seg.fromKey); ok {
			grow(p)
		}
		if p, ok := r.point(seg.toFrame, seg.toKey); ok {
			grow(p)
		}
	}
	for _, m := range markerPoints() {
		if p, ok := r.point(m.frame, m.key); ok {
			grow(p)
		}
	}
	if minU > maxU {
		// Nothing to draw.
		return []byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`)
	}

	spanU := math.Max(maxU-minU, 1)
	spanV := math.Max(maxV-minV, 1)
	scale := (svgWidth - 2*svgMargin) / spanU
	height := spanV*scale + 2*svgMargin

	// Viewport mapping with the vertical axis flipped so z points up.
	toX := func(u float64) float64 { return svgMargin + (u-minU)*scale }
	toY := func(v float64) float64 { return height - svgMargin - (v-minV)*scale }

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		svgWidth, height, svgWidth, height)
	buf.WriteString(`  <style>
    .arm { stroke: #1a1a1a; stroke-width: 3; }
    .rod { stroke: #555555; stroke-width: 2; }
    .kingpin { stroke: #888888; stroke-width: 1.5; stroke-dasharray: 6 4; }
    .ground { stroke: #b0b0b0; stroke-width: 1; stroke-dasharray: 2 4; }
    .marker { fill: none; stroke: #c0392b; stroke-width: 1.5; }
    .label { font: 11px sans-serif; fill: #333333; }
  </style>
`)

	// Ground line at z = 0, when it falls inside the drawing.
	if minV <= 0 && maxV >= 0 {
		fmt.Fprintf(&buf, `  <line class="ground" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			toX(minU), toY(0), toX(maxU), toY(0))
	}

	for _, seg := range linkSegments() {
		from, ok1 := r.point(seg.fromFrame, seg.fromKey)
		to, ok2 := r.point(seg.toFrame, seg.toKey)
		if !ok1 || !ok2 {
			continue
		}
		fu, fv := proj(from)
		tu, tv := proj(to)
		fmt.Fprintf(&buf, `  <line class="%s" x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n",
			seg.class, toX(fu), toY(fv), toX(tu), toY(tv))
	}

	for _, m := range markerPoints() {
		p, ok := r.point(m.frame, m.key)
		if !ok {
			continue
		}
		u, v := proj(p)
		fmt.Fprintf(&buf, `  <circle class="marker" cx="%.1f" cy="%.1f" r="4"/>`+"\n", toX(u), toY(v))
		fmt.Fprintf(&buf, `  <text class="label" x="%.1f" y="%.1f">%s/%s</text>`+"\n",
			toX(u)+6, toY(v)-6, m.frame, m.key)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// projector maps ground coordinates to the (horizontal, vertical) pair of
// the chosen elevation.
func projector(view Elevation) func([3]float64) (float64, float64) {
	if view == SideElevation {
		return func(p [3]float64) (float64, float64) { return p[0], p[2] }
	}
	return func(p [3]float64) (float64, float64) { return p[1], p[2] }
}
