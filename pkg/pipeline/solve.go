package pipeline

import (
	"github.com/matzehuels/hardpoint/pkg/design"
	"github.com/matzehuels/hardpoint/pkg/designfile"
	"github.com/matzehuels/hardpoint/pkg/linkage"
)

// Parse reads the design inputs from the options, either from disk or from
// inline content. Samples given in the options override samples from the
// design file point by point.
func Parse(opts Options) (design.Target, design.Bounds, design.Samples, error) {
	var (
		target  design.Target
		bounds  design.Bounds
		samples design.Samples
		err     error
	)
	if opts.DesignFile != "" {
		target, bounds, samples, err = designfile.Load(opts.DesignFile)
	} else {
		target, bounds, samples, err = designfile.Parse([]byte(opts.Design))
	}
	if err != nil {
		return design.Target{}, nil, nil, err
	}

	if len(opts.Samples) > 0 {
		if samples == nil {
			samples = design.Samples{}
		}
		for id, f := range opts.Samples {
			samples[id] = f
		}
	}
	return target, bounds, samples, nil
}

// Solve builds the frame system for the design and generates the linkage.
// When no samples are given, the fraction is applied uniformly across every
// sampled coordinate of the design space.
func Solve(target design.Target, bounds design.Bounds, samples design.Samples, fraction float64) (*linkage.System, error) {
	s, err := linkage.Build(target, bounds, samples)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		if err := s.Space.SetUniformFraction(fraction); err != nil {
			return nil, err
		}
	}
	if err := linkage.GenerateLinkage(s); err != nil {
		return nil, err
	}
	return s, nil
}
