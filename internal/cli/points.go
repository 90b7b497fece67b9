package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/designfile"
)

// pointsCommand creates the points command showing the design point table.
func (c *CLI) pointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "points [design.toml]",
		Short: "Show the design points, their frames, and bounds",
		Long: `Show the design points, their frames, and bounds.

Without a design file, the command lists the point table of the
double-wishbone linkage: which frame owns each point, which coordinates are
sampled, and which are inherited from another point. With a design file, the
configured bound ranges are shown alongside.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var bounds design.Bounds
			if len(args) == 1 {
				var err error
				_, bounds, _, err = designfile.Load(args[0])
				if err != nil {
					return err
				}
			}
			printPointTable(bounds)
			return nil
		},
	}
}

func printPointTable(bounds design.Bounds) {
	headers := []string{"Point", "Title", "Frame", "Sampled"}
	if bounds != nil {
		headers = append(headers, "Longitudinal", "Lateral", "Vertical")
	}

	rows := [][]string{}
	for _, id := range design.LinkagePoints {
		row := []string{
			string(id),
			design.TitleOf(id),
			design.FrameOf(id),
			sampledAxes(id),
		}
		if bounds != nil {
			b := bounds[id]
			for axis := 0; axis < 3; axis++ {
				row = append(row, formatBoundAxis(b, axis))
			}
		}
		rows = append(rows, row)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
		})
	fmt.Println(t)
}

// sampledAxes formats the sampled-coordinate mask of a point, e.g. "x y".
func sampledAxes(id design.PointID) string {
	names := []string{"x", "y", "z"}
	var out []string
	for axis, sampled := range design.SampledAxes(id) {
		if sampled {
			out = append(out, names[axis])
		}
	}
	for _, inh := range design.InheritanceOf(id) {
		out = append(out, fmt.Sprintf("(%s←%s)", names[inh.Axis], inh.Donor))
	}
	return strings.Join(out, " ")
}

// formatBoundAxis formats one axis of a bound for display.
func formatBoundAxis(b design.Bound, axis int) string {
	lo, hi := b[axis][0], b[axis][1]
	switch {
	case math.IsNaN(lo) || math.IsNaN(hi):
		return "fixed"
	case lo == 0 && hi == 0:
		return "inherited"
	case lo == hi:
		return fmt.Sprintf("%.1f", lo)
	default:
		return fmt.Sprintf("%.1f … %.1f", lo, hi)
	}
}
