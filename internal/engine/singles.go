package engine

import (
	"sort"

	"github.com/yourusername/betting-optimizer/internal/models"
)

// MinSingleConfidence is the quality threshold for the singles output.
// Outcomes scoring below it are silently excluded, not errors.
const MinSingleConfidence = 65.0

// ScoreSingle runs the full scoring chain for one outcome: market consensus,
// expected value, confidence. The input must already satisfy the engine
// contract (see models.MatchInput.Validate).
func ScoreSingle(in models.MatchInput) (models.ScoredSingle, error) {
	pMarket, err := MarketConsensus(in.BookmakerOdds)
	if err != nil {
		return models.ScoredSingle{}, err
	}

	ev := ExpectedValue(in.Probability, in.Best.Odds)
	confidence := ConfidenceScore(in.Probability, pMarket, ev, in.Best.Odds)

	avgOdds := averageOdds(in.BookmakerOdds)
	oddsValue := 0.0
	if avgOdds > 0 {
		oddsValue = (in.Best.Odds - avgOdds) / avgOdds * 100.0
	}

	return models.ScoredSingle{
		FixtureID:         in.FixtureID,
		HomeTeam:          in.HomeTeam,
		AwayTeam:          in.AwayTeam,
		League:            in.League,
		KickoffTime:       in.KickoffTime,
		Outcome:           in.Outcome,
		Selection:         in.Selection,
		Odds:              in.Best.Odds,
		Bookmaker:         in.Best.Bookmaker,
		AvgMarketOdds:     avgOdds,
		OddsValuePct:      oddsValue,
		Probability:       in.Probability,
		MarketProbability: pMarket,
		ExpectedValue:     ev,
		Confidence:        confidence,
		Advice:            in.Advice,
	}, nil
}

// FilterSingles keeps only singles at or above the given confidence threshold
func FilterSingles(singles []models.ScoredSingle, minConfidence float64) []models.ScoredSingle {
	kept := make([]models.ScoredSingle, 0, len(singles))
	for _, s := range singles {
		if s.Confidence >= minConfidence {
			kept = append(kept, s)
		}
	}
	return kept
}

// SortSingles orders singles by descending confidence, breaking ties by
// descending expected value, then descending odds. The chain is fixed so
// output ordering is reproducible.
func SortSingles(singles []models.ScoredSingle) {
	sort.SliceStable(singles, func(i, j int) bool {
		if singles[i].Confidence != singles[j].Confidence {
			return singles[i].Confidence > singles[j].Confidence
		}
		if singles[i].ExpectedValue != singles[j].ExpectedValue {
			return singles[i].ExpectedValue > singles[j].ExpectedValue
		}
		return singles[i].Odds > singles[j].Odds
	})
}

func averageOdds(odds []float64) float64 {
	if len(odds) == 0 {
		return 0
	}
	sum := 0.0
	for _, o := range odds {
		sum += o
	}
	return sum / float64(len(odds))
}
