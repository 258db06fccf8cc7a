package models

// RiskTier classifies an accumulator by aggregate odds and confidence
type RiskTier string

// Risk tiers. HIGH_FILTERED combinations are never shown to the user.
const (
	RiskLow          RiskTier = "LOW"
	RiskMedium       RiskTier = "MEDIUM"
	RiskHighFiltered RiskTier = "HIGH_FILTERED"
)

// Accumulator is a 2 or 3 leg combination of qualifying singles,
// each leg from a different match
type Accumulator struct {
	Legs            []ScoredSingle `json:"selections"`
	CombinedOdds    float64        `json:"combined_odds"`
	AvgConfidence   float64        `json:"average_confidence"`
	RealisticWinPct float64        `json:"realistic_win_pct"`
	Risk            RiskTier       `json:"risk_level"`
}

// LegCount returns the number of legs in the accumulator
func (a *Accumulator) LegCount() int {
	return len(a.Legs)
}
