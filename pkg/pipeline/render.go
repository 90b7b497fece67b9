package pipeline

import (
	"fmt"

	"github.com/matzehuels/hardpoint/pkg/linkage"
	"github.com/matzehuels/hardpoint/pkg/render"
)

// Render produces the requested artifacts from a solved system and its
// report. Formats must already be validated.
func Render(s *linkage.System, rep *render.Report, formats []string) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(formats))
	for _, format := range formats {
		data, err := renderFormat(s, rep, format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(s *linkage.System, rep *render.Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return render.RenderJSON(rep)
	case FormatSVGFront:
		return render.RenderElevationSVG(rep, render.FrontElevation), nil
	case FormatSVGSide:
		return render.RenderElevationSVG(rep, render.SideElevation), nil
	case FormatDOT:
		return []byte(render.ToDOT(s)), nil
	case FormatTree:
		return render.RenderDOTSVG(render.ToDOT(s))
	default:
		return nil, fmt.Errorf("invalid format: %q", format)
	}
}
