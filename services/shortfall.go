package services

import "math"

// Round2 rounds to two decimal places, the precision used for all stored
// and derived quantities.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Shortfall is the positive gap between a required quantity and an on-hand
// quantity. Fully stocked identities yield 0 and never appear on a derived
// list.
func Shortfall(required, onHand float64) float64 {
	gap := Round2(required - onHand)
	if gap <= 0 {
		return 0
	}
	return gap
}
