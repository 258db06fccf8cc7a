package apifootball

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []BookmakerEntry {
	return []BookmakerEntry{
		{
			Bookmaker: Bookmaker{ID: 8, Name: "Bet365"},
			Bets: []Bet{
				{
					ID:   1,
					Name: "Match Winner",
					Values: []OddValue{
						{Value: "Home", Odd: "1.80"},
						{Value: "Draw", Odd: "3.60"},
						{Value: "Away", Odd: "4.50"},
					},
				},
				{
					ID:   5,
					Name: "Goals Over/Under",
					Values: []OddValue{
						{Value: "Over 2.5", Odd: "1.95"},
					},
				},
			},
		},
		{
			Bookmaker: Bookmaker{ID: 24, Name: "10Bet"},
			Bets: []Bet{
				{
					ID:   1,
					Name: "Match Winner",
					Values: []OddValue{
						{Value: "Home", Odd: "1.85"},
						{Value: "Draw", Odd: "3.50"},
						{Value: "Away", Odd: "4.40"},
					},
				},
			},
		},
	}
}

func TestBookmakerOddsByID(t *testing.T) {
	triple, found := BookmakerOdds(sampleEntries(), 24, "10bet")
	require.True(t, found)
	assert.Equal(t, 1.85, triple.Home)
	assert.Equal(t, 3.50, triple.Draw)
	assert.Equal(t, 4.40, triple.Away)
}

func TestBookmakerOddsByNameFallback(t *testing.T) {
	// Wrong ID but the name still matches
	triple, found := BookmakerOdds(sampleEntries(), 999, "10bet")
	require.True(t, found)
	assert.Equal(t, 1.85, triple.Home)
}

func TestBookmakerOddsNotListed(t *testing.T) {
	_, found := BookmakerOdds(sampleEntries(), 42, "unibet")
	assert.False(t, found)

	_, found = BookmakerOdds(nil, 24, "10bet")
	assert.False(t, found)
}

func TestMarketOdds(t *testing.T) {
	home, draw, away := MarketOdds(sampleEntries())

	assert.Equal(t, []float64{1.80, 1.85}, home)
	assert.Equal(t, []float64{3.60, 3.50}, draw)
	assert.Equal(t, []float64{4.50, 4.40}, away)
}

func TestMatchWinnerOddsIgnoresOtherMarkets(t *testing.T) {
	entries := []BookmakerEntry{
		{
			Bookmaker: Bookmaker{ID: 24, Name: "10Bet"},
			Bets: []Bet{
				{
					ID:   5,
					Name: "Goals Over/Under",
					Values: []OddValue{
						{Value: "Over 2.5", Odd: "1.95"},
					},
				},
			},
		},
	}

	_, found := BookmakerOdds(entries, 24, "10bet")
	assert.False(t, found, "a bookmaker without a 1X2 market has no usable odds")
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "Plain percent", input: "45%", expected: 0.45},
		{name: "No percent sign", input: "45", expected: 0.45},
		{name: "Whitespace", input: " 33% ", expected: 0.33},
		{name: "Zero", input: "0%", expected: 0},
		{name: "Hundred", input: "100%", expected: 1},
		{name: "Over a hundred clamps", input: "120%", expected: 1},
		{name: "Garbage", input: "n/a", expected: 0},
		{name: "Empty", input: "", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParsePercent(tt.input), 1e-12)
		})
	}
}

func TestFixtureIsUpcoming(t *testing.T) {
	now := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)
	later := now.Add(3 * time.Hour)
	earlier := now.Add(-3 * time.Hour)

	tests := []struct {
		name     string
		fixture  Fixture
		expected bool
	}{
		{
			name:     "Future and not started",
			fixture:  Fixture{Fixture: FixtureInfo{Date: later, Status: FixtureStatus{Short: "NS"}}},
			expected: true,
		},
		{
			name:     "Future, long status only",
			fixture:  Fixture{Fixture: FixtureInfo{Date: later, Status: FixtureStatus{Long: "Not Started"}}},
			expected: true,
		},
		{
			name:     "Time to be defined",
			fixture:  Fixture{Fixture: FixtureInfo{Date: later, Status: FixtureStatus{Long: "Time to be defined"}}},
			expected: true,
		},
		{
			name:     "Already kicked off",
			fixture:  Fixture{Fixture: FixtureInfo{Date: earlier, Status: FixtureStatus{Short: "NS"}}},
			expected: false,
		},
		{
			name:     "In play",
			fixture:  Fixture{Fixture: FixtureInfo{Date: later, Status: FixtureStatus{Short: "1H", Long: "First Half"}}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.fixture.IsUpcoming(now))
		})
	}
}
