// Package engine implements the scoring and accumulator construction core.
// Every function here is a pure transform over already-fetched numbers;
// ingestion and presentation live elsewhere.
package engine

import "errors"

// ErrNoBookmakerOdds is returned when an outcome arrives without a single
// bookmaker price. The odds source contract requires at least one.
var ErrNoBookmakerOdds = errors.New("no bookmaker odds supplied for outcome")

// MarketConsensus converts raw bookmaker decimal odds for one outcome into
// an implied probability: the arithmetic mean of 1/odds across bookmakers.
// No margin removal is applied beyond the averaging.
func MarketConsensus(odds []float64) (float64, error) {
	if len(odds) == 0 {
		return 0, ErrNoBookmakerOdds
	}

	sum := 0.0
	for _, o := range odds {
		sum += 1.0 / o
	}
	return sum / float64(len(odds)), nil
}
