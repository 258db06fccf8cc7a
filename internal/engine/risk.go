package engine

import "github.com/yourusername/betting-optimizer/internal/models"

// Risk tier cut-offs
const (
	lowTierMinConfidence      = 85.0
	lowTierMaxOdds            = 4.0
	mediumPairMinConfidence   = 80.0
	mediumPairMaxOdds         = 6.0
	mediumTrebleMinConfidence = 75.0
	mediumTrebleMaxOdds       = 10.0
)

// ClassifyRisk assigns a risk tier to an accumulator from its average
// confidence, leg count, and combined odds. Anything that does not meet the
// LOW or MEDIUM criteria is HIGH_FILTERED and excluded from output.
func ClassifyRisk(avgConfidence float64, legCount int, combinedOdds float64) models.RiskTier {
	if avgConfidence >= lowTierMinConfidence && legCount == 2 && combinedOdds <= lowTierMaxOdds {
		return models.RiskLow
	}
	if avgConfidence >= mediumPairMinConfidence && legCount == 2 && combinedOdds <= mediumPairMaxOdds {
		return models.RiskMedium
	}
	if avgConfidence >= mediumTrebleMinConfidence && legCount == 3 && combinedOdds <= mediumTrebleMaxOdds {
		return models.RiskMedium
	}
	return models.RiskHighFiltered
}
