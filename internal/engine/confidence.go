package engine

// Scoring constants. These are fixed design constants, not fitted
// parameters; the score is a heuristic ranking bounded to [0,100],
// not a calibrated probability.
const (
	agreementCloseBonus    = 15.0 // |p_ai - p_market| < 5 percentage points
	agreementNearBonus     = 10.0 // < 10 pp
	agreementLooseBonus    = 5.0  // < 15 pp
	agreementPenalty       = -5.0 // >= 15 pp
	valueEdgeWeight        = 0.5
	evStrongBonus          = 15.0 // ev > 0.15
	evGoodBonus            = 10.0 // ev > 0.10
	evModestBonus          = 5.0  // ev > 0.05
	evNegativePenalty      = -10.0
	shortOddsBonus         = 5.0   // odds < 1.5
	longOddsPenalty        = -10.0 // odds > 4.0
	shortOddsThreshold     = 1.5
	longOddsThreshold      = 4.0
)

// ConfidenceScore computes the multi-factor confidence score for one
// outcome. Inputs: AI probability and market consensus in [0,1], expected
// value as a fraction, best decimal odds. The running score starts at
// p_ai*100 and each adjustment is purely additive, applied in order:
//
//  1. agreement between AI and market consensus
//  2. value edge when the AI rates the outcome above the market
//  3. expected value buckets
//  4. odds reasonableness
//
// The result is clamped to [0,100].
func ConfidenceScore(pAI, pMarket, ev, odds float64) float64 {
	score := pAI * 100.0

	// Agreement bonus, first matching bucket wins
	diff := abs(pAI-pMarket) * 100.0
	switch {
	case diff < 5:
		score += agreementCloseBonus
	case diff < 10:
		score += agreementNearBonus
	case diff < 15:
		score += agreementLooseBonus
	default:
		score += agreementPenalty
	}

	// Value edge: reward the AI seeing more probability than the market
	if pAI > pMarket {
		score += (pAI - pMarket) * 100.0 * valueEdgeWeight
	}

	// Expected value buckets
	switch {
	case ev > 0.15:
		score += evStrongBonus
	case ev > 0.10:
		score += evGoodBonus
	case ev > 0.05:
		score += evModestBonus
	case ev < 0:
		score += evNegativePenalty
	}

	// Odds reasonableness
	switch {
	case odds < shortOddsThreshold:
		score += shortOddsBonus
	case odds > longOddsThreshold:
		score += longOddsPenalty
	}

	return clamp(score, 0, 100)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
