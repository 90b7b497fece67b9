// Package render turns a solved linkage system into shareable artifacts: a
// JSON hardpoint report, 2-D elevation drawings as SVG, and a Graphviz
// rendering of the frame tree.
//
// All geometry is read through the system's point evaluation API, so the
// renderers see exactly what any other consumer would see.
package render

import (
	"encoding/json"
	"sort"

	"github.com/matzehuels/hardpoint/pkg/frame"
	"github.com/matzehuels/hardpoint/pkg/geom"
	"github.com/matzehuels/hardpoint/pkg/linkage"
)

// PointReport is one named point in both its frame-local and ground
// coordinates, millimetres.
type PointReport struct {
	Key    string     `json:"key"`
	Title  string     `json:"title"`
	Style  string     `json:"style,omitempty"`
	Local  [3]float64 `json:"local"`
	Ground [3]float64 `json:"ground"`
}

// FrameReport is one frame with its ground-frame origin and its points.
type FrameReport struct {
	Key    string        `json:"key"`
	Title  string        `json:"title"`
	Parent string        `json:"parent,omitempty"`
	Origin [3]float64    `json:"origin"`
	Angles [3]float64    `json:"angles"`
	Points []PointReport `json:"points"`
}

// Report is the full hardpoint report of a solved system.
type Report struct {
	Linkage string        `json:"linkage"`
	Axle    string        `json:"axle"`
	Frames  []FrameReport `json:"frames"`
}

// BuildReport reads every frame and point of the system and re-expresses it
// in ground coordinates. Frames are sorted by key for deterministic output.
func BuildReport(s *linkage.System) (*Report, error) {
	rep := &Report{
		Linkage: string(s.Target.Linkage),
		Axle:    string(s.Target.Axle),
	}

	for _, f := range s.Graph.Frames() {
		fr := FrameReport{
			Key:    f.Key,
			Title:  f.Title,
			Angles: [3]float64(f.Transform.Angles),
		}
		if p := s.Graph.Parent(f); p != nil {
			fr.Parent = p.Key
		}

		origin, err := s.EvaluatePoint(frame.Literal(geom.Vec{}), f.Key, linkage.FrameIntermediate)
		if err != nil {
			return nil, err
		}
		fr.Origin = [3]float64(origin)

		for _, poi := range f.Points() {
			ground, err := s.EvaluatePoint(frame.Named(poi.Key), f.Key, linkage.FrameIntermediate)
			if err != nil {
				return nil, err
			}
			fr.Points = append(fr.Points, PointReport{
				Key:    poi.Key,
				Title:  poi.Title,
				Style:  poi.Style,
				Local:  [3]float64(poi.Position),
				Ground: [3]float64(ground),
			})
		}
		rep.Frames = append(rep.Frames, fr)
	}

	sort.Slice(rep.Frames, func(i, j int) bool { return rep.Frames[i].Key < rep.Frames[j].Key })
	return rep, nil
}

// RenderJSON marshals the report with indentation.
func RenderJSON(r *Report) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// point looks up a point's ground coordinates by frame and key.
func (r *Report) point(frameKey, pointKey string) ([3]float64, bool) {
	for _, f := range r.Frames {
		if f.Key != frameKey {
			continue
		}
		for _, p := range f.Points {
			if p.Key == pointKey {
				return p.Ground, true
			}
		}
	}
	return [3]float64{}, false
}
