package apifootball

import "time"

// Fixture statuses that count as not yet started
const (
	StatusNotStarted   = "NS"
	StatusTimeToDefine = "TBD"
)

// Fixture is one match entry from GET /fixtures
type Fixture struct {
	Fixture FixtureInfo `json:"fixture"`
	League  League      `json:"league"`
	Teams   Teams       `json:"teams"`
}

// FixtureInfo carries the fixture identity and schedule
type FixtureInfo struct {
	ID     int64         `json:"id"`
	Date   time.Time     `json:"date"`
	Status FixtureStatus `json:"status"`
}

// FixtureStatus is the provider's match state
type FixtureStatus struct {
	Long  string `json:"long"`
	Short string `json:"short"`
}

// League identifies the competition
type League struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Teams holds both sides of a fixture
type Teams struct {
	Home Team `json:"home"`
	Away Team `json:"away"`
}

// Team is one side of a fixture
type Team struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// IsUpcoming reports whether the fixture has not started yet
func (f *Fixture) IsUpcoming(now time.Time) bool {
	if !f.Fixture.Date.After(now) {
		return false
	}
	switch f.Fixture.Status.Short {
	case StatusNotStarted, StatusTimeToDefine:
		return true
	}
	switch f.Fixture.Status.Long {
	case "Not Started", "Time to be defined":
		return true
	}
	return false
}

// BookmakerEntry is one bookmaker's markets for a fixture from GET /odds
type BookmakerEntry struct {
	Bookmaker Bookmaker `json:"bookmaker"`
	Bets      []Bet     `json:"bets"`
}

// Bookmaker identifies an odds provider
type Bookmaker struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Bet is one market offered by a bookmaker
type Bet struct {
	ID     int        `json:"id"`
	Name   string     `json:"name"`
	Values []OddValue `json:"values"`
}

// OddValue is a single priced outcome. The provider sends prices as strings.
type OddValue struct {
	Value string `json:"value"`
	Odd   string `json:"odd"`
}

// PredictionEntry is the provider's prediction payload from GET /predictions
type PredictionEntry struct {
	Predictions Predictions `json:"predictions"`
}

// Predictions carries outcome percentages and the provider's advice line
type Predictions struct {
	Percent PercentTriple `json:"percent"`
	Advice  string        `json:"advice"`
}

// PercentTriple holds per-outcome probability strings such as "45%"
type PercentTriple struct {
	Home string `json:"home"`
	Draw string `json:"draw"`
	Away string `json:"away"`
}

// AccountStatus is the GET /status payload
type AccountStatus struct {
	Account      Account      `json:"account"`
	Subscription Subscription `json:"subscription"`
	Requests     RequestQuota `json:"requests"`
}

// Account identifies the subscriber
type Account struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// Subscription names the provider plan
type Subscription struct {
	Plan   string `json:"plan"`
	Active bool   `json:"active"`
}

// RequestQuota reports daily quota usage
type RequestQuota struct {
	Current  int `json:"current"`
	LimitDay int `json:"limit_day"`
}
