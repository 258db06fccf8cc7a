package models

import "time"

// ScoredSingle is a single-outcome recommendation produced by the engine.
// It exists only for the lifetime of one analysis run; nothing is persisted.
type ScoredSingle struct {
	FixtureID         int64     `json:"fixture_id"`
	HomeTeam          string    `json:"home_team"`
	AwayTeam          string    `json:"away_team"`
	League            string    `json:"league"`
	KickoffTime       time.Time `json:"match_time"`
	Outcome           string    `json:"selection_type"`
	Selection         string    `json:"selection"`
	Odds              float64   `json:"odds"`
	Bookmaker         string    `json:"bookmaker"`
	AvgMarketOdds     float64   `json:"avg_market_odds"`
	OddsValuePct      float64   `json:"odds_value"`
	Probability       float64   `json:"probability"`
	MarketProbability float64   `json:"market_probability"`
	ExpectedValue     float64   `json:"expected_value"`
	Confidence        float64   `json:"confidence"`
	Advice            string    `json:"advice,omitempty"`
}

// MatchLabel returns a human readable "Home vs Away" string
func (s *ScoredSingle) MatchLabel() string {
	return s.HomeTeam + " vs " + s.AwayTeam
}
