// Package models defines the data structures flowing through the analysis pipeline.
package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Outcome labels for the 1X2 (match winner) market
const (
	OutcomeHome = "home"
	OutcomeDraw = "draw"
	OutcomeAway = "away"
)

// MinOdds is the lowest decimal price accepted from any bookmaker
const MinOdds = 1.01

// BestOdds is the best available decimal price for an outcome, already
// maximized across bookmakers by the odds source
type BestOdds struct {
	Odds      float64 `json:"odds" validate:"gte=1.01"`
	Bookmaker string  `json:"bookmaker"`
}

// MatchInput bundles everything the engine needs to score one outcome:
// the AI probability, the best available price, and the raw per-bookmaker
// price list used to derive the market consensus
type MatchInput struct {
	FixtureID     int64     `json:"fixture_id" validate:"required"`
	HomeTeam      string    `json:"home_team" validate:"required"`
	AwayTeam      string    `json:"away_team" validate:"required"`
	League        string    `json:"league"`
	KickoffTime   time.Time `json:"kickoff_time"`
	Outcome       string    `json:"outcome" validate:"required,oneof=home draw away"`
	Selection     string    `json:"selection" validate:"required"`
	Probability   float64   `json:"probability" validate:"gte=0,lte=1"`
	Best          BestOdds  `json:"best"`
	BookmakerOdds []float64 `json:"bookmaker_odds" validate:"min=1,dive,gte=1.01"`
	Advice        string    `json:"advice"`
}

var validate = validator.New()

// Validate checks the input against the engine's contract. A violation is a
// caller error and fails the whole batch rather than being coerced.
func (m *MatchInput) Validate() error {
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid input for fixture %d outcome %q: %w", m.FixtureID, m.Outcome, err)
	}
	if m.Best.Odds < MinOdds {
		return fmt.Errorf("invalid input for fixture %d outcome %q: best odds %.2f below minimum %.2f",
			m.FixtureID, m.Outcome, m.Best.Odds, MinOdds)
	}
	return nil
}

// MatchLabel returns a human readable "Home vs Away" string
func (m *MatchInput) MatchLabel() string {
	return m.HomeTeam + " vs " + m.AwayTeam
}
