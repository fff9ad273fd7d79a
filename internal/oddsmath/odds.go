package oddsmath

import (
	"errors"
	"math"
)

// ErrInvalidOdds reports a price outside the American or decimal odds
// conventions (American odds are never 0, decimal odds never <= 1).
var ErrInvalidOdds = errors.New("invalid odds")

// ErrEmptyParlay reports a parlay combination with zero legs.
var ErrEmptyParlay = errors.New("parlay has no legs")

// ImpliedProbability converts American odds to the probability the price
// embeds, before bookmaker margin.
func ImpliedProbability(american int) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}
	if american < 0 {
		a := float64(-american)
		return a / (a + 100), nil
	}
	return 100 / (float64(american) + 100), nil
}

// ToDecimal converts American odds to decimal odds.
func ToDecimal(american int) (float64, error) {
	if american == 0 {
		return 0, ErrInvalidOdds
	}
	if american < 0 {
		return 100/float64(-american) + 1, nil
	}
	return float64(american)/100 + 1, nil
}

// ToAmerican converts decimal odds back to the American convention,
// rounded to the nearest integer.
func ToAmerican(decimal float64) (int, error) {
	if decimal <= 1 {
		return 0, ErrInvalidOdds
	}
	if decimal >= 2 {
		return int(math.Round((decimal - 1) * 100)), nil
	}
	return int(math.Round(-100 / (decimal - 1))), nil
}

// ParlayOdds is the combined price of a multi-leg bet.
type ParlayOdds struct {
	DecimalOdds  float64
	AmericanOdds int
	Payout       float64
	Stake        float64
}

// CombineParlay multiplies the legs' decimal odds into a combined price
// and computes the payout on the given stake. Leg order does not affect
// the result.
func CombineParlay(odds []int, stake float64) (*ParlayOdds, error) {
	if len(odds) == 0 {
		return nil, ErrEmptyParlay
	}
	combined := 1.0
	for _, o := range odds {
		dec, err := ToDecimal(o)
		if err != nil {
			return nil, err
		}
		combined *= dec
	}
	american, err := ToAmerican(combined)
	if err != nil {
		return nil, err
	}
	return &ParlayOdds{
		DecimalOdds:  combined,
		AmericanOdds: american,
		Payout:       stake * combined,
		Stake:        stake,
	}, nil
}
