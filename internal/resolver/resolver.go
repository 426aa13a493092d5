// Package resolver runs the detection strategies in order and reports the
// first environment found.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MyCarrier-DevOps/go-envdeps/internal/config"
	"github.com/MyCarrier-DevOps/go-envdeps/internal/strategy"
)

// Resolution is the outcome of a resolver run.
type Resolution struct {
	// Environment is the resolved environment name. Empty unless Determined.
	Environment string

	// Determined reports whether any strategy produced a result.
	Determined bool

	// Strategy is the name of the winning strategy.
	Strategy string

	// Source describes where the environment came from.
	Source string

	// Explanations holds one entry per strategy, in order. Disabled
	// strategies are recorded with no steps.
	Explanations []*strategy.Explanation
}

// Resolver evaluates strategies first-match-wins.
type Resolver struct {
	strategies []strategy.EnvironmentStrategy
	logger     *slog.Logger
}

// New creates a Resolver. A nil logger discards output.
func New(strategies []strategy.EnvironmentStrategy, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Resolver{strategies: strategies, logger: logger}
}

// Resolve runs each enabled strategy until one produces an environment.
// A cancelled prompt ends the run undetermined without an error; any other
// strategy error is returned.
func (r *Resolver) Resolve(ctx context.Context, settings *config.Settings) (Resolution, error) {
	var res Resolution

	for _, s := range r.strategies {
		if !s.Enabled(settings) {
			res.Explanations = append(res.Explanations, strategy.NewExplanation(s.Name()))
			r.logger.Debug("strategy disabled", slog.String("strategy", s.Name()))
			continue
		}

		d, err := s.Detect(ctx, settings)
		if d.Explanation != nil {
			res.Explanations = append(res.Explanations, d.Explanation)
			for _, step := range d.Explanation.Steps {
				r.logger.Debug(step, slog.String("strategy", s.Name()))
			}
		}
		if err != nil {
			if errors.Is(err, strategy.ErrPromptCancelled) {
				r.logger.Warn("environment prompt ended without an answer",
					slog.String("strategy", s.Name()),
					slog.String("error", err.Error()))
				return res, nil
			}
			return res, fmt.Errorf("strategy %s: %w", s.Name(), err)
		}

		if d.Found {
			res.Environment = d.Environment
			res.Determined = true
			res.Strategy = s.Name()
			res.Source = d.Source
			r.logger.Info("environment resolved",
				slog.String("environment", d.Environment),
				slog.String("strategy", s.Name()),
				slog.String("source", d.Source))
			return res, nil
		}
	}

	return res, nil
}
