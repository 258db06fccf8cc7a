package engine

import (
	"sort"

	"github.com/yourusername/betting-optimizer/internal/models"
)

// Accumulator construction limits
const (
	// MinAccumulatorConfidence is the per-leg eligibility threshold,
	// stricter than the singles display threshold.
	MinAccumulatorConfidence = 75.0

	// MaxCombinedOdds caps the product of leg odds for any emitted combination.
	MaxCombinedOdds = 15.0

	// MinLegs and MaxLegs bound the combination size.
	MinLegs = 2
	MaxLegs = 3
)

// BuilderOptions bound the combinatorial work done per batch. Zero values
// fall back to the defaults below.
type BuilderOptions struct {
	// MaxEligibleSingles caps the eligible pool before combination
	// generation, keeping worst-case work bounded. Best singles kept first.
	MaxEligibleSingles int

	// MaxAccumulators caps how many combinations are emitted.
	MaxAccumulators int

	// MaxLegs limits combination size to 2 or 3 legs.
	MaxLegs int
}

// Default resource bounds
const (
	DefaultMaxEligibleSingles = 12
	DefaultMaxAccumulators    = 20
)

func (o BuilderOptions) withDefaults() BuilderOptions {
	if o.MaxEligibleSingles <= 0 {
		o.MaxEligibleSingles = DefaultMaxEligibleSingles
	}
	if o.MaxAccumulators <= 0 {
		o.MaxAccumulators = DefaultMaxAccumulators
	}
	if o.MaxLegs < MinLegs || o.MaxLegs > MaxLegs {
		o.MaxLegs = MaxLegs
	}
	return o
}

// BuildAccumulators assembles 2 and 3 leg combinations from the qualifying
// singles. Legs must come from distinct matches and independently meet the
// accumulator eligibility threshold. Combinations breaching the combined
// odds cap or the average confidence floor are dropped, as are those
// classified HIGH_FILTERED. Fewer than two eligible singles is a valid,
// empty result.
func BuildAccumulators(singles []models.ScoredSingle, opts BuilderOptions) []models.Accumulator {
	opts = opts.withDefaults()

	eligible := FilterSingles(singles, MinAccumulatorConfidence)
	SortSingles(eligible)
	if len(eligible) > opts.MaxEligibleSingles {
		eligible = eligible[:opts.MaxEligibleSingles]
	}
	if len(eligible) < MinLegs {
		return nil
	}

	var accumulators []models.Accumulator
	for legs := MinLegs; legs <= opts.MaxLegs && legs <= len(eligible); legs++ {
		forEachCombination(len(eligible), legs, func(idx []int) {
			if acc, ok := assemble(eligible, idx); ok {
				accumulators = append(accumulators, acc)
			}
		})
	}

	SortAccumulators(accumulators)
	if len(accumulators) > opts.MaxAccumulators {
		accumulators = accumulators[:opts.MaxAccumulators]
	}
	return accumulators
}

// assemble builds one candidate and applies the hard limits and risk filter
func assemble(eligible []models.ScoredSingle, idx []int) (models.Accumulator, bool) {
	combinedOdds := 1.0
	totalConfidence := 0.0
	winProbability := 1.0
	seen := make(map[int64]bool, len(idx))

	legs := make([]models.ScoredSingle, 0, len(idx))
	for _, i := range idx {
		leg := eligible[i]
		if seen[leg.FixtureID] {
			// Never combine two outcomes from the same match
			return models.Accumulator{}, false
		}
		seen[leg.FixtureID] = true

		combinedOdds *= leg.Odds
		totalConfidence += leg.Confidence
		winProbability *= leg.Confidence / 100.0
		legs = append(legs, leg)
	}

	if combinedOdds > MaxCombinedOdds {
		return models.Accumulator{}, false
	}

	avgConfidence := totalConfidence / float64(len(legs))
	if avgConfidence < MinAccumulatorConfidence {
		return models.Accumulator{}, false
	}

	risk := ClassifyRisk(avgConfidence, len(legs), combinedOdds)
	if risk == models.RiskHighFiltered {
		return models.Accumulator{}, false
	}

	return models.Accumulator{
		Legs:            legs,
		CombinedOdds:    combinedOdds,
		AvgConfidence:   avgConfidence,
		RealisticWinPct: winProbability * 100.0,
		Risk:            risk,
	}, true
}

// SortAccumulators orders by descending realistic win percentage, preferring
// fewer legs on ties, then higher average confidence.
func SortAccumulators(accumulators []models.Accumulator) {
	sort.SliceStable(accumulators, func(i, j int) bool {
		if accumulators[i].RealisticWinPct != accumulators[j].RealisticWinPct {
			return accumulators[i].RealisticWinPct > accumulators[j].RealisticWinPct
		}
		if len(accumulators[i].Legs) != len(accumulators[j].Legs) {
			return len(accumulators[i].Legs) < len(accumulators[j].Legs)
		}
		return accumulators[i].AvgConfidence > accumulators[j].AvgConfidence
	})
}

// forEachCombination visits every k-combination of [0,n) in lexicographic
// order, reusing a single index buffer.
func forEachCombination(n, k int, visit func(idx []int)) {
	if k > n {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		visit(idx)

		// Advance to the next combination
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
