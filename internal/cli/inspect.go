package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hardpoint/pkg/frame"
	"github.com/matzehuels/hardpoint/pkg/linkage"
	"github.com/matzehuels/hardpoint/pkg/pipeline"
	"github.com/matzehuels/hardpoint/pkg/render"
)

// inspectOpts holds the command-line flags for the inspect command.
type inspectOpts struct {
	frameKey string  // target frame for point evaluation
	fraction float64 // uniform design-space fraction
}

// inspectCommand creates the inspect command for evaluating hardpoints.
func (c *CLI) inspectCommand() *cobra.Command {
	opts := inspectOpts{
		frameKey: linkage.FrameIntermediate,
		fraction: pipeline.DefaultFraction,
	}

	cmd := &cobra.Command{
		Use:   "inspect [design.toml] [point]",
		Short: "Evaluate solved hardpoints in any coordinate frame",
		Long: `Evaluate solved hardpoints in any coordinate frame.

Without a point argument, every frame and point of the solved linkage is
printed with local and ground coordinates. With a point, its position is
evaluated in the frame chosen with --frame.

Examples:
  hardpoint inspect design.toml              # full report
  hardpoint inspect design.toml LB           # lower ball joint, ground frame
  hardpoint inspect design.toml LB --frame W # in the wheel frame`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(true)
			if err != nil {
				return err
			}
			defer runner.Close()

			s, err := runner.SolveOnly(cmd.Context(), pipeline.Options{
				DesignFile: args[0],
				Fraction:   opts.fraction,
			})
			if err != nil {
				return err
			}

			if len(args) == 2 {
				return inspectPoint(s, args[1], opts.frameKey)
			}
			return inspectAll(s)
		},
	}

	cmd.Flags().StringVar(&opts.frameKey, "frame", opts.frameKey, "frame to evaluate the point in (I, T, W, B, X, LA, UA, TR)")
	cmd.Flags().Float64Var(&opts.fraction, "fraction", opts.fraction, "uniform design-space fraction in [0, 1]")

	return cmd
}

// inspectPoint evaluates one point in the chosen frame. The point is looked
// up in its owning frame and walked through the tree from there.
func inspectPoint(s *linkage.System, key, frameKey string) error {
	source := owningFrame(s, key)
	if source == "" {
		return fmt.Errorf("point %q not found in any frame", key)
	}

	pos, err := s.EvaluatePoint(frame.Named(key), source, frameKey)
	if err != nil {
		return err
	}

	printInfo("%s in frame %s", key, frameKey)
	printDetail("longitudinal %10.3f", pos.X())
	printDetail("lateral      %10.3f", pos.Y())
	printDetail("vertical     %10.3f", pos.Z())
	return nil
}

// inspectAll prints the full report as a table per frame.
func inspectAll(s *linkage.System) error {
	rep, err := render.BuildReport(s)
	if err != nil {
		return err
	}

	for _, f := range rep.Frames {
		title := f.Key
		if f.Title != "" {
			title += " · " + f.Title
		}
		fmt.Println(StyleTitle.Render(title))

		rows := [][]string{}
		for _, p := range f.Points {
			rows = append(rows, []string{
				p.Key,
				p.Title,
				formatVec(p.Local),
				formatVec(p.Ground),
			})
		}
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
			Headers("Point", "Title", "Local", "Ground").
			Rows(rows...)
		fmt.Println(t)
	}
	return nil
}

// owningFrame finds the frame holding a named point. Pickup points move
// between frames while solving, so the live tree is searched rather than the
// static point table.
func owningFrame(s *linkage.System, key string) string {
	for _, f := range s.Graph.Frames() {
		if _, ok := f.Point(key); ok {
			return f.Key
		}
	}
	return ""
}

// formatVec formats a coordinate triple for table display.
func formatVec(v [3]float64) string {
	return fmt.Sprintf("%8.2f %8.2f %8.2f", v[0], v[1], v[2])
}
