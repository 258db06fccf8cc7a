package engine

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/betting-optimizer/internal/models"
)

// Pipeline is the engine's single entry point. It is stateless between
// calls; rerunning with identical input always yields identical output.
type Pipeline struct {
	opts   BuilderOptions
	logger *logrus.Logger
}

// NewPipeline creates a pipeline with the given resource bounds
func NewPipeline(opts BuilderOptions, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = logrus.New()
	}
	return &Pipeline{opts: opts.withDefaults(), logger: logger}
}

// ScoreAndBuild scores every outcome in the batch and assembles
// accumulators from the qualifying singles. All inputs are validated
// up front: an invalid outcome is a caller contract violation and fails
// the call immediately.
//
// Singles scoring is independent per outcome and runs concurrently;
// accumulator construction starts only once the full singles set is
// materialized.
func (p *Pipeline) ScoreAndBuild(inputs []models.MatchInput) ([]models.ScoredSingle, []models.Accumulator, error) {
	for i := range inputs {
		if err := inputs[i].Validate(); err != nil {
			return nil, nil, err
		}
	}

	scored := make([]models.ScoredSingle, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i := range inputs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			scored[i], errs[i] = ScoreSingle(inputs[i])
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, nil, fmt.Errorf("scoring fixture %d outcome %q: %w",
				inputs[i].FixtureID, inputs[i].Outcome, err)
		}
	}

	singles := FilterSingles(scored, MinSingleConfidence)
	SortSingles(singles)

	accumulators := BuildAccumulators(singles, p.opts)

	p.logger.WithFields(logrus.Fields{
		"inputs":       len(inputs),
		"singles":      len(singles),
		"accumulators": len(accumulators),
	}).Debug("Pipeline run complete")

	return singles, accumulators, nil
}
