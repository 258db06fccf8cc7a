package apifootball

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Match Winner (1X2) market identifiers
const (
	matchWinnerBetID   = 1
	matchWinnerBetName = "Match Winner"
)

// OddsTriple holds decimal prices for the three 1X2 outcomes.
// A zero entry means the outcome was not priced.
type OddsTriple struct {
	Home float64
	Draw float64
	Away float64
}

// IsEmpty reports whether no outcome was priced
func (o OddsTriple) IsEmpty() bool {
	return o.Home == 0 && o.Draw == 0 && o.Away == 0
}

// ForOutcome returns the price for an outcome label ("home", "draw", "away").
// Unknown labels return zero.
func (o OddsTriple) ForOutcome(outcome string) float64 {
	switch strings.ToLower(outcome) {
	case "home":
		return o.Home
	case "draw":
		return o.Draw
	case "away":
		return o.Away
	}
	return 0
}

// BookmakerOdds extracts the 1X2 prices offered by the target bookmaker.
// The bookmaker is matched by provider ID, with a name fallback because the
// feed occasionally re-labels entries.
func BookmakerOdds(entries []BookmakerEntry, bookmakerID int, bookmakerName string) (OddsTriple, bool) {
	needle := strings.ToLower(bookmakerName)
	for _, entry := range entries {
		name := strings.ToLower(entry.Bookmaker.Name)
		if entry.Bookmaker.ID != bookmakerID && (needle == "" || !strings.Contains(name, needle)) {
			continue
		}

		triple := matchWinnerOdds(entry.Bets)
		if !triple.IsEmpty() {
			return triple, true
		}
	}
	return OddsTriple{}, false
}

// MarketOdds collects every bookmaker's 1X2 prices per outcome, the raw
// input for the market consensus calculation
func MarketOdds(entries []BookmakerEntry) (home, draw, away []float64) {
	for _, entry := range entries {
		triple := matchWinnerOdds(entry.Bets)
		if triple.Home > 0 {
			home = append(home, triple.Home)
		}
		if triple.Draw > 0 {
			draw = append(draw, triple.Draw)
		}
		if triple.Away > 0 {
			away = append(away, triple.Away)
		}
	}
	return home, draw, away
}

func matchWinnerOdds(bets []Bet) OddsTriple {
	var triple OddsTriple
	for _, bet := range bets {
		if bet.ID != matchWinnerBetID && bet.Name != matchWinnerBetName {
			continue
		}
		for _, value := range bet.Values {
			odd := parseOdd(value.Odd)
			if odd <= 0 {
				continue
			}
			switch strings.ToLower(value.Value) {
			case "home", "1":
				triple.Home = odd
			case "draw", "x":
				triple.Draw = odd
			case "away", "2":
				triple.Away = odd
			}
		}
	}
	return triple
}

// parseOdd converts the provider's string price to a float. Prices go
// through decimal to avoid accumulating parse artifacts like 1.6500000001.
func parseOdd(s string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}

// ParsePercent converts a provider percentage string such as "45%" into a
// probability in [0,1]. Malformed values parse as zero.
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	f, _ := d.Div(decimal.NewFromInt(100)).Float64()
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
