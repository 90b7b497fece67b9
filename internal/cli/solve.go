package cli

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/observability"
	"github.com/matzehuels/hardpoint/pkg/pipeline"
)

// solveOpts holds the command-line flags for the solve command.
type solveOpts struct {
	output   string   // output file (single format) or base path (multiple)
	formats  []string // output formats: json, svg-front, svg-side, dot, tree
	fraction float64  // uniform design-space fraction
	samples  []string // per-point sample overrides ("LAF=0.25,0.5,0")
	noCache  bool     // disable caching
	refresh  bool     // bypass cache and recompute
}

// solveCommand creates the solve command for generating linkages.
func (c *CLI) solveCommand() *cobra.Command {
	var formatsStr string
	opts := solveOpts{fraction: pipeline.DefaultFraction}

	cmd := &cobra.Command{
		Use:   "solve [design.toml]",
		Short: "Generate suspension hardpoints from a design file",
		Long: `Generate suspension hardpoints from a design file.

The solve command reads a TOML design file, samples the design space, runs
the linkage solver, and writes the requested artifacts. Results are cached
locally for faster subsequent runs.

Examples:
  hardpoint solve design.toml                      # JSON report
  hardpoint solve design.toml -f svg-front,tree    # drawings
  hardpoint solve design.toml --fraction 0.25      # sample near lower bounds
  hardpoint solve design.toml --sample LAF=0.2,0.8,0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runSolve(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), svg-front, svg-side, dot, tree (comma-separated)")
	cmd.Flags().Float64Var(&opts.fraction, "fraction", opts.fraction, "uniform design-space fraction in [0, 1]")
	cmd.Flags().StringArrayVar(&opts.samples, "sample", nil, "per-point sample override, e.g. LAF=0.25,0.5,0 (repeatable)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache and recompute")

	return cmd
}

func (c *CLI) runSolve(cmd *cobra.Command, input string, opts solveOpts) error {
	samples, err := parseSampleFlags(opts.samples)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	// Surface solver stage timing and bound violations while solving.
	observability.SetSolverHooks(&solverReporter{cli: c})
	defer observability.Reset()

	spinner := newSpinnerWithContext(cmd.Context(), "Solving linkage...")
	spinner.Start()

	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		DesignFile: input,
		Formats:    opts.formats,
		Fraction:   opts.fraction,
		Samples:    samples,
		Refresh:    opts.refresh,
	})
	if err != nil {
		spinner.StopWithError("Solve failed")
		return err
	}
	spinner.Stop()

	printSuccess("Solved %s", input)
	printStats(result.Stats.FrameCount, result.Stats.PointCount, result.CacheInfo.Hit)

	return writeArtifacts(result.Artifacts, opts.formats, input, opts.output)
}

// solverReporter forwards solver events to the CLI output.
type solverReporter struct {
	observability.NoopSolverHooks
	cli *CLI
}

func (r *solverReporter) OnStageComplete(stage string, d time.Duration, err error) {
	if err != nil {
		r.cli.Logger.Errorf("stage %s failed after %s: %v", stage, d.Round(time.Microsecond), err)
		return
	}
	r.cli.Logger.Debugf("stage %s completed in %s", stage, d.Round(time.Microsecond))
}

func (r *solverReporter) OnBoundViolation(point string, axis int, min, max, value float64) {
	printWarning("point %s %s = %.2f outside bound [%.2f, %.2f]",
		point, design.Axis(axis), value, min, max)
}

// parseSampleFlags parses repeated --sample flags into design samples.
func parseSampleFlags(flags []string) (design.Samples, error) {
	if len(flags) == 0 {
		return nil, nil
	}
	samples := design.Samples{}
	for _, s := range flags {
		id, rest, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid sample %q, expected POINT=f,f,f", s)
		}
		parts := strings.Split(rest, ",")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid sample %q, expected three fractions", s)
		}
		var f design.Fractions
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid sample fraction %q: %w", p, err)
			}
			f[i] = v
		}
		samples[design.PointID(strings.TrimSpace(id))] = f
	}
	return samples, nil
}

// writeArtifacts writes each rendered artifact next to the input file, or to
// the explicit output path when a single format was requested.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) error {
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := artifactPath(input, output, format, len(formats) > 1)
		if err := writeFile(path, data); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// artifactPath picks the output path for one artifact. With a single format
// an explicit output is used verbatim; with several it becomes the base path.
func artifactPath(input, output, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if output != "" {
		base = output
	}
	return base + artifactExt(format)
}

func artifactExt(format string) string {
	switch format {
	case pipeline.FormatJSON:
		return ".json"
	case pipeline.FormatSVGFront:
		return ".front.svg"
	case pipeline.FormatSVGSide:
		return ".side.svg"
	case pipeline.FormatDOT:
		return ".dot"
	case pipeline.FormatTree:
		return ".tree.svg"
	default:
		return "." + format
	}
}
