package engine

// ExpectedValue combines a probability estimate with an offered decimal
// price: ev = p*odds - 1. Positive values denote a theoretically profitable
// bet in expectation. The result is an open-ended fraction, not clamped.
func ExpectedValue(p, odds float64) float64 {
	return p*odds - 1.0
}
